// Package application 实现店铺外观的应用服务
package application

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/appearance/domain"
)

// ErrMissingImage 轮播图缺少图片地址
var ErrMissingImage = errors.New("banner image_url is required")

// AppearanceService 店铺外观应用服务
type AppearanceService struct {
	settings domain.SettingsRepository
	banners  domain.BannerRepository
}

// NewAppearanceService 创建店铺外观服务
func NewAppearanceService(settings domain.SettingsRepository, banners domain.BannerRepository) *AppearanceService {
	return &AppearanceService{settings: settings, banners: banners}
}

// GetSettings 返回店铺设置，未配置时返回默认主题
func (s *AppearanceService) GetSettings(ctx context.Context) (*domain.StoreSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return domain.DefaultStoreSettings(), nil
	}
	return settings, nil
}

// SettingsCommand 店铺设置更新命令，nil 字段保持原值
type SettingsCommand struct {
	StoreName       *string
	LogoURL         *string
	PrimaryColor    *string
	SecondaryColor  *string
	BackgroundColor *string
	TextColor       *string
}

// UpdateSettings 更新店铺设置，不存在时创建
func (s *AppearanceService) UpdateSettings(ctx context.Context, cmd SettingsCommand) (*domain.StoreSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = domain.DefaultStoreSettings()
	}

	if cmd.StoreName != nil && *cmd.StoreName != "" {
		settings.StoreName = *cmd.StoreName
	}
	if cmd.LogoURL != nil {
		settings.LogoURL = *cmd.LogoURL
	}
	if cmd.PrimaryColor != nil {
		settings.PrimaryColor = *cmd.PrimaryColor
	}
	if cmd.SecondaryColor != nil {
		settings.SecondaryColor = *cmd.SecondaryColor
	}
	if cmd.BackgroundColor != nil {
		settings.BackgroundColor = *cmd.BackgroundColor
	}
	if cmd.TextColor != nil {
		settings.TextColor = *cmd.TextColor
	}

	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// CreateBanner 新增轮播图
func (s *AppearanceService) CreateBanner(ctx context.Context, imageURL, linkURL string, position int, active bool) (*domain.HomeBanner, error) {
	if imageURL == "" {
		return nil, ErrMissingImage
	}
	b := &domain.HomeBanner{ImageURL: imageURL, LinkURL: linkURL, Position: position, Active: active}
	if err := s.banners.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBanner 更新轮播图
func (s *AppearanceService) UpdateBanner(ctx context.Context, id uint, imageURL, linkURL *string, position *int, active *bool) (*domain.HomeBanner, error) {
	b, err := s.banners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if imageURL != nil && *imageURL != "" {
		b.ImageURL = *imageURL
	}
	if linkURL != nil {
		b.LinkURL = *linkURL
	}
	if position != nil {
		b.Position = *position
	}
	if active != nil {
		b.Active = *active
	}

	if err := s.banners.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBanners 返回全部轮播图
func (s *AppearanceService) ListBanners(ctx context.Context) ([]*domain.HomeBanner, error) {
	return s.banners.List(ctx)
}

// DeleteBanner 删除轮播图
func (s *AppearanceService) DeleteBanner(ctx context.Context, id uint) error {
	return s.banners.Delete(ctx, id)
}
