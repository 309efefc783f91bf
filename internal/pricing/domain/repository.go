package domain

import (
	"context"
	"errors"
)

// ErrUsageExhausted 核销时用量已达上限
var ErrUsageExhausted = errors.New("coupon usage limit reached")

// CouponRepository 优惠券仓储接口
type CouponRepository interface {
	Save(ctx context.Context, coupon *Coupon) error
	// GetByCode 按规范化后的优惠码查询，不存在时返回 (nil, nil)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	GetByID(ctx context.Context, id uint) (*Coupon, error)
	List(ctx context.Context) ([]*Coupon, error)
	Delete(ctx context.Context, id uint) error
	// RecordRedemption 登记一次核销并递增用量，同一 key 重放为无操作
	// 用量超限时返回 ErrUsageExhausted，且不留下任何写入
	RecordRedemption(ctx context.Context, couponID uint, idempotencyKey string) error
}
