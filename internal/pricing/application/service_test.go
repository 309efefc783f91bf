package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/pricing/domain"
	"gorm.io/gorm"
)

type fakeProductRepo struct {
	catalogdomain.ProductRepository
	product *catalogdomain.Product
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id uint) (*catalogdomain.Product, error) {
	if f.product == nil || f.product.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.product, nil
}

type fakeCouponRepo struct {
	domain.CouponRepository
	coupon      *domain.Coupon
	lookedUp    []string
	redemptions []string
}

func (f *fakeCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	f.lookedUp = append(f.lookedUp, code)
	if f.coupon == nil || f.coupon.Code != code {
		return nil, nil
	}
	return f.coupon, nil
}

func (f *fakeCouponRepo) GetByID(ctx context.Context, id uint) (*domain.Coupon, error) {
	if f.coupon == nil || f.coupon.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.coupon, nil
}

func (f *fakeCouponRepo) Save(ctx context.Context, coupon *domain.Coupon) error {
	f.coupon = coupon
	return nil
}

func (f *fakeCouponRepo) RecordRedemption(ctx context.Context, couponID uint, idempotencyKey string) error {
	f.redemptions = append(f.redemptions, idempotencyKey)
	return nil
}

func plainProduct(id uint, price float64) *catalogdomain.Product {
	return &catalogdomain.Product{
		Model: gorm.Model{ID: id},
		Name:  "Widget",
		Slug:  "widget",
		Price: decimal.NewFromFloat(price),
	}
}

func variedProduct(id uint) *catalogdomain.Product {
	p := plainProduct(id, 99)
	p.Variations = []catalogdomain.ProductVariation{
		{Model: gorm.Model{ID: 11}, ProductID: id, Name: "S", Price: decimal.NewFromInt(10), Position: 0},
		{Model: gorm.Model{ID: 12}, ProductID: id, Name: "L", Price: decimal.NewFromInt(20), Position: 1},
	}
	return p
}

func newTestService(products *fakeProductRepo, coupons *fakeCouponRepo) *PricingService {
	s := NewPricingService(products, coupons)
	s.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestGetQuote_NoVariationsNoCoupon(t *testing.T) {
	service := newTestService(&fakeProductRepo{product: plainProduct(1, 19.99)}, &fakeCouponRepo{})

	quote, err := service.GetQuote(context.Background(), QuoteRequest{ProductID: 1})

	require.NoError(t, err)
	assert.True(t, quote.BasePrice.Equal(decimal.NewFromFloat(19.99)))
	assert.True(t, quote.FinalPrice.Equal(decimal.NewFromFloat(19.99)))
	assert.Nil(t, quote.VariationID)
	assert.Empty(t, quote.CouponOutcome)
}

func TestGetQuote_DefaultVariation(t *testing.T) {
	service := newTestService(&fakeProductRepo{product: variedProduct(1)}, &fakeCouponRepo{})

	quote, err := service.GetQuote(context.Background(), QuoteRequest{ProductID: 1})

	require.NoError(t, err)
	// 有规格时绝不回落到基础价，默认取 position 最小的规格
	assert.True(t, quote.BasePrice.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, quote.VariationID)
	assert.Equal(t, uint(11), *quote.VariationID)
}

func TestGetQuote_ExplicitVariation(t *testing.T) {
	service := newTestService(&fakeProductRepo{product: variedProduct(1)}, &fakeCouponRepo{})
	selected := uint(12)

	quote, err := service.GetQuote(context.Background(), QuoteRequest{ProductID: 1, VariationID: &selected})

	require.NoError(t, err)
	assert.True(t, quote.BasePrice.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, uint(12), *quote.VariationID)
}

func TestGetQuote_InvalidVariation(t *testing.T) {
	service := newTestService(&fakeProductRepo{product: variedProduct(1)}, &fakeCouponRepo{})
	selected := uint(99)

	_, err := service.GetQuote(context.Background(), QuoteRequest{ProductID: 1, VariationID: &selected})

	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
}

func TestGetQuote_ProductNotFound(t *testing.T) {
	service := newTestService(&fakeProductRepo{}, &fakeCouponRepo{})

	_, err := service.GetQuote(context.Background(), QuoteRequest{ProductID: 1})

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetQuote_CouponAccepted(t *testing.T) {
	coupons := &fakeCouponRepo{coupon: &domain.Coupon{
		Model:      gorm.Model{ID: 5},
		Code:       "SAVE10",
		PercentOff: decimal.NewFromInt(10),
		Active:     true,
	}}
	service := newTestService(&fakeProductRepo{product: plainProduct(1, 200)}, coupons)
	code := " save10 "

	quote, err := service.GetQuote(context.Background(), QuoteRequest{ProductID: 1, CouponCode: &code})

	require.NoError(t, err)
	assert.Equal(t, domain.CouponAccepted, quote.CouponOutcome)
	assert.Equal(t, "180.00", quote.FinalPrice.StringFixed(2))
	// 仓储收到的是规范化后的优惠码
	assert.Equal(t, []string{"SAVE10"}, coupons.lookedUp)
}

func TestGetQuote_CouponRejectedKeepsBasePrice(t *testing.T) {
	service := newTestService(&fakeProductRepo{product: plainProduct(1, 200)}, &fakeCouponRepo{})
	code := "NOPE"

	quote, err := service.GetQuote(context.Background(), QuoteRequest{ProductID: 1, CouponCode: &code})

	require.NoError(t, err)
	assert.Equal(t, domain.CouponNotFound, quote.CouponOutcome)
	assert.Nil(t, quote.DiscountedPrice)
	assert.Equal(t, "200.00", quote.FinalPrice.StringFixed(2))
}

// 空优惠码不触达仓储，直接得到 EMPTY_CODE。
func TestGetQuote_EmptyCouponCode(t *testing.T) {
	coupons := &fakeCouponRepo{}
	service := newTestService(&fakeProductRepo{product: plainProduct(1, 200)}, coupons)
	code := "   "

	quote, err := service.GetQuote(context.Background(), QuoteRequest{ProductID: 1, CouponCode: &code})

	require.NoError(t, err)
	assert.Equal(t, domain.CouponEmptyCode, quote.CouponOutcome)
	assert.Empty(t, coupons.lookedUp)
}

func pctPtr(v int64) *decimal.Decimal {
	p := decimal.NewFromInt(v)
	return &p
}

func TestCreateCoupon_Validation(t *testing.T) {
	service := newTestService(&fakeProductRepo{}, &fakeCouponRepo{})
	ctx := context.Background()

	_, err := service.CreateCoupon(ctx, CouponCommand{Code: "  ", PercentOff: pctPtr(10)})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = service.CreateCoupon(ctx, CouponCommand{Code: "SAVE", PercentOff: pctPtr(101)})
	assert.ErrorIs(t, err, ErrInvalidPercent)

	_, err = service.CreateCoupon(ctx, CouponCommand{Code: "SAVE", PercentOff: pctPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidPercent)
}

func limitedCoupon() *domain.Coupon {
	min := decimal.NewFromInt(50)
	return &domain.Coupon{
		Model:         gorm.Model{ID: 1},
		Code:          "SAVE10",
		PercentOff:    decimal.NewFromInt(10),
		UsageLimit:    5,
		UsedCount:     2,
		MinOrderValue: &min,
		Active:        true,
	}
}

// 只改 active 的 PATCH 不得动用量上限与折扣比例。
func TestUpdateCoupon_OmittedFieldsKeepStoredValues(t *testing.T) {
	coupons := &fakeCouponRepo{coupon: limitedCoupon()}
	service := newTestService(&fakeProductRepo{}, coupons)
	inactive := false

	updated, err := service.UpdateCoupon(context.Background(), 1, CouponCommand{Active: &inactive})

	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, 5, updated.UsageLimit)
	assert.True(t, updated.PercentOff.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, updated.MinOrderValue)
	assert.True(t, updated.MinOrderValue.Equal(decimal.NewFromInt(50)))
}

// 显式的 0 是合法值：percent_off 归零、usage_limit 放开上限。
func TestUpdateCoupon_ExplicitZeroes(t *testing.T) {
	coupons := &fakeCouponRepo{coupon: limitedCoupon()}
	service := newTestService(&fakeProductRepo{}, coupons)
	zeroLimit := 0

	updated, err := service.UpdateCoupon(context.Background(), 1, CouponCommand{
		PercentOff: pctPtr(0),
		UsageLimit: &zeroLimit,
	})

	require.NoError(t, err)
	assert.True(t, updated.PercentOff.IsZero())
	assert.Equal(t, 0, updated.UsageLimit)
}

func TestUpdateCoupon_InvalidPercent(t *testing.T) {
	coupons := &fakeCouponRepo{coupon: limitedCoupon()}
	service := newTestService(&fakeProductRepo{}, coupons)

	_, err := service.UpdateCoupon(context.Background(), 1, CouponCommand{PercentOff: pctPtr(101)})

	assert.ErrorIs(t, err, ErrInvalidPercent)
}

func TestRecordRedemption_KeyValidation(t *testing.T) {
	coupons := &fakeCouponRepo{}
	service := newTestService(&fakeProductRepo{}, coupons)
	ctx := context.Background()

	err := service.RecordRedemption(ctx, 1, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidIdempotencyKey)
	assert.Empty(t, coupons.redemptions)

	err = service.RecordRedemption(ctx, 1, "3b37d07e-2a4b-4f3a-9c1e-6f0d8a1b2c3d")
	require.NoError(t, err)
	assert.Len(t, coupons.redemptions, 1)
}
