// Package http 负责处理相似商品相关的 HTTP 请求
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/storefront/internal/recommendation/application"
	"gorm.io/gorm"
)

// RecommendationHandler 相似商品 HTTP 处理器
type RecommendationHandler struct {
	service *application.RecommendationService
}

// NewRecommendationHandler 创建处理器实例
func NewRecommendationHandler(service *application.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/products/:id/similar", h.SimilarProducts)
}

// SimilarProducts 查询相似商品，何时触发由前端滚动策略决定
func (h *RecommendationHandler) SimilarProducts(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "INVALID_ID", "")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	similar, err := h.service.SimilarProducts(c.Request.Context(), uint(id), limit)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "NOT_FOUND", "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to rank similar products", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	out := make([]gin.H, 0, len(similar))
	for _, item := range similar {
		var imageURL *string
		if item.ImageURL != "" {
			url := item.ImageURL
			imageURL = &url
		}
		out = append(out, gin.H{
			"id":        item.ProductID,
			"slug":      item.Slug,
			"name":      item.Name,
			"price":     item.Price.StringFixed(2),
			"image_url": imageURL,
			"score":     item.Score,
		})
	}

	response.Success(c, out)
}
