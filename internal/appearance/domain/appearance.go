// Package domain 包含店铺外观的领域模型
package domain

import (
	"context"

	"gorm.io/gorm"
)

// StoreSettings 店铺设置，全店单行记录
type StoreSettings struct {
	gorm.Model
	StoreName       string `gorm:"column:store_name;type:varchar(255);not null" json:"store_name"`
	LogoURL         string `gorm:"column:logo_url;type:text" json:"logo_url"`
	PrimaryColor    string `gorm:"column:primary_color;type:varchar(16)" json:"primary_color"`
	SecondaryColor  string `gorm:"column:secondary_color;type:varchar(16)" json:"secondary_color"`
	BackgroundColor string `gorm:"column:background_color;type:varchar(16)" json:"background_color"`
	TextColor       string `gorm:"column:text_color;type:varchar(16)" json:"text_color"`
}

func (StoreSettings) TableName() string { return "store_settings" }

// DefaultStoreSettings 未配置时的默认主题
func DefaultStoreSettings() *StoreSettings {
	return &StoreSettings{
		StoreName:       "Storefront",
		PrimaryColor:    "#111827",
		SecondaryColor:  "#6b7280",
		BackgroundColor: "#ffffff",
		TextColor:       "#111827",
	}
}

// HomeBanner 首页轮播图，按 Position 升序展示
type HomeBanner struct {
	gorm.Model
	ImageURL string `gorm:"column:image_url;type:text;not null" json:"image_url"`
	LinkURL  string `gorm:"column:link_url;type:text" json:"link_url"`
	Position int    `gorm:"column:position;not null;default:0" json:"position"`
	Active   bool   `gorm:"column:active;not null;default:true" json:"active"`
}

func (HomeBanner) TableName() string { return "home_banners" }

// SettingsRepository 店铺设置仓储接口
type SettingsRepository interface {
	// Get 返回店铺设置，未配置时返回 (nil, nil)
	Get(ctx context.Context) (*StoreSettings, error)
	Save(ctx context.Context, settings *StoreSettings) error
}

// BannerRepository 轮播图仓储接口
type BannerRepository interface {
	Save(ctx context.Context, banner *HomeBanner) error
	GetByID(ctx context.Context, id uint) (*HomeBanner, error)
	List(ctx context.Context) ([]*HomeBanner, error)
	Delete(ctx context.Context, id uint) error
}
