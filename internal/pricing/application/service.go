// Package application 组合商品、规格与优惠券完成报价
package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/pricing/domain"
)

var (
	// ErrMissingFields 缺少必填字段
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidPercent 折扣比例必须在 0 到 100 之间
	ErrInvalidPercent = errors.New("percent_off must be between 0 and 100")
	// ErrInvalidIdempotencyKey 幂等键必须是合法的 UUID
	ErrInvalidIdempotencyKey = errors.New("idempotency key must be a valid UUID")
)

// QuoteRequest 报价请求
// CouponCode 为 nil 表示未使用优惠券，空串会得到 EMPTY_CODE 结果
type QuoteRequest struct {
	ProductID   uint
	VariationID *uint
	CouponCode  *string
}

// Quote 报价结果
// FinalPrice 在优惠券未通过校验时等于有效单价
type Quote struct {
	ProductID       uint
	VariationID     *uint
	BasePrice       decimal.Decimal
	CouponOutcome   domain.CouponOutcome
	PercentOff      decimal.Decimal
	DiscountedPrice *decimal.Decimal
	FinalPrice      decimal.Decimal
}

// PricingService 定价应用服务
type PricingService struct {
	products catalogdomain.ProductRepository
	coupons  domain.CouponRepository
	now      func() time.Time
}

// NewPricingService 创建定价服务
func NewPricingService(products catalogdomain.ProductRepository, coupons domain.CouponRepository) *PricingService {
	return &PricingService{products: products, coupons: coupons, now: time.Now}
}

// GetQuote 计算商品报价：规格定价在前，优惠券折扣在后
func (s *PricingService) GetQuote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	variations := make([]domain.Variation, 0, len(product.Variations))
	for _, v := range product.Variations {
		variations = append(variations, domain.Variation{
			ID:       v.ID,
			Name:     v.Name,
			Price:    v.Price,
			Position: v.Position,
		})
	}

	basePrice, err := domain.ResolveEffectivePrice(product.Price, variations, req.VariationID)
	if err != nil {
		return nil, err
	}

	selected := req.VariationID
	if selected == nil {
		if def := domain.DefaultVariation(variations); def != nil {
			id := def.ID
			selected = &id
		}
	}

	quote := &Quote{
		ProductID:   product.ID,
		VariationID: selected,
		BasePrice:   basePrice,
		FinalPrice:  basePrice,
	}

	if req.CouponCode == nil {
		return quote, nil
	}

	var coupon *domain.Coupon
	if normalized := domain.NormalizeCode(*req.CouponCode); normalized != "" {
		coupon, err = s.coupons.GetByCode(ctx, normalized)
		if err != nil {
			return nil, err
		}
	}

	result := domain.ApplyCoupon(*req.CouponCode, basePrice, coupon, s.now())
	quote.CouponOutcome = result.Outcome
	if result.Accepted() {
		quote.PercentOff = result.PercentOff
		quote.DiscountedPrice = &result.DiscountedPrice
		quote.FinalPrice = result.DiscountedPrice
	}

	return quote, nil
}

// CouponCommand 优惠券创建/更新命令，nil 字段保持原值
type CouponCommand struct {
	Code          string
	PercentOff    *decimal.Decimal
	UsageLimit    *int
	MinOrderValue *decimal.Decimal
	Active        *bool
	ExpiresAt     *time.Time
}

func validPercent(p decimal.Decimal) bool {
	return !p.IsNegative() && !p.GreaterThan(decimal.NewFromInt(100))
}

// CreateCoupon 创建优惠券，优惠码统一大写存储
func (s *PricingService) CreateCoupon(ctx context.Context, cmd CouponCommand) (*domain.Coupon, error) {
	code := domain.NormalizeCode(cmd.Code)
	if code == "" {
		return nil, ErrMissingFields
	}

	percentOff := decimal.Zero
	if cmd.PercentOff != nil {
		percentOff = *cmd.PercentOff
	}
	if !validPercent(percentOff) {
		return nil, ErrInvalidPercent
	}

	usageLimit := 0
	if cmd.UsageLimit != nil {
		usageLimit = *cmd.UsageLimit
	}

	active := true
	if cmd.Active != nil {
		active = *cmd.Active
	}

	c := &domain.Coupon{
		Code:          code,
		PercentOff:    percentOff,
		UsageLimit:    usageLimit,
		MinOrderValue: cmd.MinOrderValue,
		Active:        active,
		ExpiresAt:     cmd.ExpiresAt,
	}
	if err := s.coupons.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCoupon 更新优惠券，未出现的字段保持存量值
func (s *PricingService) UpdateCoupon(ctx context.Context, id uint, cmd CouponCommand) (*domain.Coupon, error) {
	c, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if code := domain.NormalizeCode(cmd.Code); code != "" {
		c.Code = code
	}
	if cmd.PercentOff != nil {
		if !validPercent(*cmd.PercentOff) {
			return nil, ErrInvalidPercent
		}
		c.PercentOff = *cmd.PercentOff
	}
	if cmd.UsageLimit != nil {
		c.UsageLimit = *cmd.UsageLimit
	}
	if cmd.MinOrderValue != nil {
		c.MinOrderValue = cmd.MinOrderValue
	}
	if cmd.Active != nil {
		c.Active = *cmd.Active
	}
	if cmd.ExpiresAt != nil {
		c.ExpiresAt = cmd.ExpiresAt
	}

	if err := s.coupons.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCoupons 返回全部优惠券
func (s *PricingService) ListCoupons(ctx context.Context) ([]*domain.Coupon, error) {
	return s.coupons.List(ctx)
}

// DeleteCoupon 删除优惠券
func (s *PricingService) DeleteCoupon(ctx context.Context, id uint) error {
	return s.coupons.Delete(ctx, id)
}

// RecordRedemption 登记一次核销，key 幂等，重放不会重复计数
// 报价路径不会调用此方法，何时核销由结算流程决定
func (s *PricingService) RecordRedemption(ctx context.Context, couponID uint, idempotencyKey string) error {
	if _, err := uuid.Parse(idempotencyKey); err != nil {
		return ErrInvalidIdempotencyKey
	}
	return s.coupons.RecordRedemption(ctx, couponID, idempotencyKey)
}
