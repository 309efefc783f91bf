// Package domain 包含商品目录的领域模型
package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 商品实体
// Position 为空的商品在列表中排在最后
type Product struct {
	gorm.Model
	Name        string             `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Slug        string             `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string             `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal    `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	CategoryID  *uint              `gorm:"column:category_id;index" json:"category_id"`
	Active      bool               `gorm:"column:active;not null;default:true" json:"active"`
	Position    *int               `gorm:"column:position" json:"position"`
	Images      []ProductImage     `gorm:"foreignKey:ProductID" json:"images"`
	Variations  []ProductVariation `gorm:"foreignKey:ProductID" json:"variations"`
}

func (Product) TableName() string { return "products" }

// ProductImage 商品图片，按 Position 升序展示
type ProductImage struct {
	gorm.Model
	ProductID uint   `gorm:"column:product_id;index;not null" json:"product_id"`
	URL       string `gorm:"column:url;type:text;not null" json:"url"`
	Position  int    `gorm:"column:position;not null;default:0" json:"position"`
}

func (ProductImage) TableName() string { return "product_images" }

// ProductVariation 商品规格
// 有规格的商品只按所选规格定价，无规格时使用商品基础价
type ProductVariation struct {
	gorm.Model
	ProductID uint            `gorm:"column:product_id;index;not null" json:"product_id"`
	Name      string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Position  int             `gorm:"column:position;not null;default:0" json:"position"`
}

func (ProductVariation) TableName() string { return "product_variations" }

// MainImageURL 返回首图地址，没有图片时返回空串
func (p *Product) MainImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}
