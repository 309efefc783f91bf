package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Coupon 优惠券实体
// Code 统一大写存储，大小写不敏感匹配
type Coupon struct {
	gorm.Model
	Code          string           `gorm:"column:code;type:varchar(64);uniqueIndex;not null" json:"code"`
	PercentOff    decimal.Decimal  `gorm:"column:percent_off;type:decimal(5,2);not null" json:"percent_off"`
	UsageLimit    int              `gorm:"column:usage_limit;not null;default:0" json:"usage_limit"`
	UsedCount     int              `gorm:"column:used_count;not null;default:0" json:"used_count"`
	MinOrderValue *decimal.Decimal `gorm:"column:min_order_value;type:decimal(10,2)" json:"min_order_value"`
	Active        bool             `gorm:"column:active;not null;default:true" json:"active"`
	ExpiresAt     *time.Time       `gorm:"column:expires_at" json:"expires_at"`
}

func (Coupon) TableName() string { return "coupons" }

// CouponRedemption 核销记录，IdempotencyKey 保证同一次核销只计一次
type CouponRedemption struct {
	gorm.Model
	CouponID       uint   `gorm:"column:coupon_id;index;not null" json:"coupon_id"`
	IdempotencyKey string `gorm:"column:idempotency_key;type:varchar(36);uniqueIndex;not null" json:"idempotency_key"`
}

func (CouponRedemption) TableName() string { return "coupon_redemptions" }

// NormalizeCode 将优惠码规范化为大写并去除首尾空白
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CouponOutcome 优惠券校验结果类别
type CouponOutcome string

const (
	CouponAccepted       CouponOutcome = "ACCEPTED"
	CouponEmptyCode      CouponOutcome = "EMPTY_CODE"
	CouponNotFound       CouponOutcome = "NOT_FOUND"
	CouponExpired        CouponOutcome = "EXPIRED"
	CouponExhaustedUsage CouponOutcome = "USAGE_EXHAUSTED"
	CouponBelowMinimum   CouponOutcome = "BELOW_MINIMUM"
)

// CouponResult 优惠券校验结果
// DiscountedPrice 仅在 Accepted 时有效，保留完整精度，展示时再舍入
type CouponResult struct {
	Outcome         CouponOutcome
	PercentOff      decimal.Decimal
	DiscountedPrice decimal.Decimal
}

// Accepted 校验是否通过
func (r CouponResult) Accepted() bool { return r.Outcome == CouponAccepted }

// DisplayPrice 折后价的展示值，两位小数四舍五入
func (r CouponResult) DisplayPrice() string {
	return r.DiscountedPrice.StringFixed(2)
}

var oneHundred = decimal.NewFromInt(100)

// ApplyCoupon 按固定顺序校验优惠券并计算折后价
// 校验顺序决定拒绝原因：空码 → 不存在/未启用 → 过期 → 用尽 → 未达门槛
// 纯函数，不修改券记录，重复调用结果一致
func ApplyCoupon(code string, basePrice decimal.Decimal, coupon *Coupon, now time.Time) CouponResult {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return CouponResult{Outcome: CouponEmptyCode}
	}

	if coupon == nil || coupon.Code != normalized || !coupon.Active {
		return CouponResult{Outcome: CouponNotFound}
	}

	if coupon.ExpiresAt != nil && !coupon.ExpiresAt.After(now) {
		return CouponResult{Outcome: CouponExpired}
	}

	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return CouponResult{Outcome: CouponExhaustedUsage}
	}

	if coupon.MinOrderValue != nil && coupon.MinOrderValue.IsPositive() && basePrice.LessThan(*coupon.MinOrderValue) {
		return CouponResult{Outcome: CouponBelowMinimum}
	}

	discounted := basePrice.Mul(oneHundred.Sub(coupon.PercentOff)).Div(oneHundred)
	return CouponResult{
		Outcome:         CouponAccepted,
		PercentOff:      coupon.PercentOff,
		DiscountedPrice: discounted,
	}
}
