// Package http 负责处理陈列排序相关的 HTTP 请求
package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/storefront/internal/merchandising/application"
	"github.com/wyfcoding/storefront/internal/merchandising/domain"
)

// MerchandisingHandler 陈列排序 HTTP 处理器
type MerchandisingHandler struct {
	service *application.MerchandisingService
}

// NewMerchandisingHandler 创建处理器实例
func NewMerchandisingHandler(service *application.MerchandisingService) *MerchandisingHandler {
	return &MerchandisingHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *MerchandisingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.PATCH("/products/order", h.Reorder)
}

// Reorder 应用后台提交的整批商品排序
func (h *MerchandisingHandler) Reorder(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "INVALID_PAYLOAD", "")
		return
	}

	result, err := h.service.Reorder(c.Request.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPayload):
			response.ErrorWithStatus(c, http.StatusBadRequest, "INVALID_PAYLOAD", "")
		case errors.Is(err, domain.ErrInvalidItem):
			response.ErrorWithStatus(c, http.StatusBadRequest, "INVALID_ITEM", "")
		default:
			logging.Error(c.Request.Context(), "Failed to reorder products", "error", err)
			response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		}
		return
	}

	response.Success(c, result)
}
