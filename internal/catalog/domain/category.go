package domain

import "gorm.io/gorm"

// Category 商品分类
// 删除分类时商品仅解除关联，不级联删除
type Category struct {
	gorm.Model
	Name     string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Slug     string `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	ImageURL string `gorm:"column:image_url;type:text" json:"image_url"`
}

func (Category) TableName() string { return "categories" }
