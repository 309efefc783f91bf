package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/storefront/internal/pricing/domain"
	"gorm.io/gorm"
)

type couponRepository struct{ db *gorm.DB }

// NewCouponRepository 创建优惠券仓储实现
func NewCouponRepository(db *gorm.DB) domain.CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Save(ctx context.Context, coupon *domain.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.WithContext(ctx).Where("code = ?", domain.NormalizeCode(code)).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *couponRepository) GetByID(ctx context.Context, id uint) (*domain.Coupon, error) {
	var c domain.Coupon
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *couponRepository) List(ctx context.Context) ([]*domain.Coupon, error) {
	var coupons []*domain.Coupon
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&coupons).Error
	return coupons, err
}

func (r *couponRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Coupon{}, id).Error
}

// RecordRedemption 核销：同一事务内登记幂等键并带守卫递增用量
// 守卫条件写进 UPDATE，并发核销不会把 used_count 推过 usage_limit
func (r *couponRepository) RecordRedemption(ctx context.Context, couponID uint, idempotencyKey string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var replayed int64
		if err := tx.Model(&domain.CouponRedemption{}).
			Where("idempotency_key = ?", idempotencyKey).
			Count(&replayed).Error; err != nil {
			return err
		}
		if replayed > 0 {
			return nil
		}

		res := tx.Model(&domain.Coupon{}).
			Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", couponID).
			UpdateColumn("used_count", gorm.Expr("used_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var c domain.Coupon
			if err := tx.First(&c, couponID).Error; err != nil {
				return err
			}
			return domain.ErrUsageExhausted
		}

		return tx.Create(&domain.CouponRedemption{
			CouponID:       couponID,
			IdempotencyKey: idempotencyKey,
		}).Error
	})
}
