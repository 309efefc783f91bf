// Package http 负责处理定价与优惠券相关的 HTTP 请求
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/storefront/internal/pricing/application"
	"github.com/wyfcoding/storefront/internal/pricing/domain"
	"gorm.io/gorm"
)

// PricingHandler 定价 HTTP 处理器
type PricingHandler struct {
	service *application.PricingService
}

// NewPricingHandler 创建处理器实例
func NewPricingHandler(service *application.PricingService) *PricingHandler {
	return &PricingHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *PricingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/pricing/quote", h.GetQuote)

	coupons := router.Group("/coupons")
	{
		coupons.GET("", h.ListCoupons)
		coupons.POST("", h.CreateCoupon)
		coupons.PATCH("/:id", h.UpdateCoupon)
		coupons.DELETE("/:id", h.DeleteCoupon)
		coupons.POST("/:id/redeem", h.RedeemCoupon)
	}
}

// QuoteRequest 报价请求
type QuoteRequest struct {
	ProductID   uint    `json:"product_id" binding:"required"`
	VariationID *uint   `json:"variation_id"`
	CouponCode  *string `json:"coupon_code"`
}

// GetQuote 计算商品报价
func (h *PricingHandler) GetQuote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	quote, err := h.service.GetQuote(c.Request.Context(), application.QuoteRequest{
		ProductID:   req.ProductID,
		VariationID: req.VariationID,
		CouponCode:  req.CouponCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSelection):
			response.ErrorWithStatus(c, http.StatusBadRequest, "INVALID_SELECTION", "")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.ErrorWithStatus(c, http.StatusNotFound, "NOT_FOUND", "")
		default:
			logging.Error(c.Request.Context(), "Failed to compute quote", "error", err)
			response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		}
		return
	}

	out := gin.H{
		"product_id":   quote.ProductID,
		"variation_id": quote.VariationID,
		"base_price":   quote.BasePrice.StringFixed(2),
		"final_price":  quote.FinalPrice.StringFixed(2),
	}
	if quote.CouponOutcome != "" {
		out["coupon_outcome"] = quote.CouponOutcome
	}
	if quote.DiscountedPrice != nil {
		out["percent_off"] = quote.PercentOff.String()
		out["discounted_price"] = quote.DiscountedPrice.StringFixed(2)
	}

	response.Success(c, out)
}

// CouponRequest 优惠券创建/更新请求，缺省字段不覆盖存量值
type CouponRequest struct {
	Code          string   `json:"code"`
	PercentOff    *float64 `json:"percent_off"`
	UsageLimit    *int     `json:"usage_limit"`
	MinOrderValue *float64 `json:"min_order_value"`
	Active        *bool    `json:"active"`
	ExpiresAt     *string  `json:"expires_at"`
}

func (r *CouponRequest) toCommand() (application.CouponCommand, error) {
	cmd := application.CouponCommand{
		Code:       r.Code,
		UsageLimit: r.UsageLimit,
		Active:     r.Active,
	}
	if r.PercentOff != nil {
		pct := decimal.NewFromFloat(*r.PercentOff)
		cmd.PercentOff = &pct
	}
	if r.MinOrderValue != nil {
		min := decimal.NewFromFloat(*r.MinOrderValue)
		cmd.MinOrderValue = &min
	}
	if r.ExpiresAt != nil && *r.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, *r.ExpiresAt)
		if err != nil {
			return cmd, err
		}
		cmd.ExpiresAt = &t
	}
	return cmd, nil
}

// ListCoupons 优惠券列表
func (h *PricingHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.service.ListCoupons(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list coupons", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, coupons)
}

// CreateCoupon 创建优惠券
func (h *PricingHandler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	cmd, err := req.toCommand()
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "INVALID_EXPIRES_AT", "")
		return
	}

	coupon, err := h.service.CreateCoupon(c.Request.Context(), cmd)
	if err != nil {
		h.writeCommandError(c, err, "Failed to create coupon")
		return
	}

	response.Success(c, coupon)
}

// UpdateCoupon 更新优惠券
func (h *PricingHandler) UpdateCoupon(c *gin.Context) {
	id, ok := h.numericID(c)
	if !ok {
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	cmd, err := req.toCommand()
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "INVALID_EXPIRES_AT", "")
		return
	}

	coupon, err := h.service.UpdateCoupon(c.Request.Context(), id, cmd)
	if err != nil {
		h.writeCommandError(c, err, "Failed to update coupon")
		return
	}

	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠券
func (h *PricingHandler) DeleteCoupon(c *gin.Context) {
	id, ok := h.numericID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCoupon(c.Request.Context(), id); err != nil {
		h.writeCommandError(c, err, "Failed to delete coupon")
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

// RedeemRequest 核销请求，幂等键缺省时服务端生成
type RedeemRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
}

// RedeemCoupon 登记一次优惠券核销
func (h *PricingHandler) RedeemCoupon(c *gin.Context) {
	id, ok := h.numericID(c)
	if !ok {
		return
	}

	// 请求体可省略，此时服务端生成幂等键
	var req RedeemRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	if err := h.service.RecordRedemption(c.Request.Context(), id, req.IdempotencyKey); err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidIdempotencyKey):
			response.ErrorWithStatus(c, http.StatusBadRequest, "INVALID_IDEMPOTENCY_KEY", "")
		case errors.Is(err, domain.ErrUsageExhausted):
			response.ErrorWithStatus(c, http.StatusConflict, "USAGE_EXHAUSTED", "")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.ErrorWithStatus(c, http.StatusNotFound, "NOT_FOUND", "")
		default:
			logging.Error(c.Request.Context(), "Failed to record redemption", "error", err)
			response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		}
		return
	}

	response.Success(c, gin.H{"coupon_id": id, "idempotency_key": req.IdempotencyKey})
}

func (h *PricingHandler) numericID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "INVALID_ID", "")
		return 0, false
	}
	return uint(id), true
}

func (h *PricingHandler) writeCommandError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, application.ErrMissingFields):
		response.ErrorWithStatus(c, http.StatusBadRequest, "MISSING_FIELDS", "")
	case errors.Is(err, application.ErrInvalidPercent):
		response.ErrorWithStatus(c, http.StatusBadRequest, "INVALID_PERCENT", "")
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, "NOT_FOUND", "")
	default:
		logging.Error(c.Request.Context(), msg, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
	}
}
