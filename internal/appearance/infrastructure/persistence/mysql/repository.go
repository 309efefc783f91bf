package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/appearance/domain"
	"gorm.io/gorm"
)

type settingsRepository struct{ db *gorm.DB }

// NewSettingsRepository 创建店铺设置仓储实现
func NewSettingsRepository(db *gorm.DB) domain.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.StoreSettings, error) {
	var s domain.StoreSettings
	err := r.db.WithContext(ctx).Order("id ASC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *domain.StoreSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

type bannerRepository struct{ db *gorm.DB }

// NewBannerRepository 创建轮播图仓储实现
func NewBannerRepository(db *gorm.DB) domain.BannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Save(ctx context.Context, banner *domain.HomeBanner) error {
	return r.db.WithContext(ctx).Save(banner).Error
}

func (r *bannerRepository) GetByID(ctx context.Context, id uint) (*domain.HomeBanner, error) {
	var b domain.HomeBanner
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bannerRepository) List(ctx context.Context) ([]*domain.HomeBanner, error) {
	var banners []*domain.HomeBanner
	err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&banners).Error
	return banners, err
}

func (r *bannerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.HomeBanner{}, id).Error
}
