// Package http 负责处理店铺外观相关的 HTTP 请求
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/storefront/internal/appearance/application"
	"gorm.io/gorm"
)

// AppearanceHandler 店铺外观 HTTP 处理器
type AppearanceHandler struct {
	service *application.AppearanceService
}

// NewAppearanceHandler 创建处理器实例
func NewAppearanceHandler(service *application.AppearanceService) *AppearanceHandler {
	return &AppearanceHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *AppearanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/store-settings", h.GetSettings)
	router.PUT("/store-settings", h.UpdateSettings)

	banners := router.Group("/banners")
	{
		banners.GET("", h.ListBanners)
		banners.POST("", h.CreateBanner)
		banners.PATCH("/:id", h.UpdateBanner)
		banners.DELETE("/:id", h.DeleteBanner)
	}
}

// GetSettings 查询店铺设置
func (h *AppearanceHandler) GetSettings(c *gin.Context) {
	settings, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to load store settings", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, settings)
}

// SettingsRequest 店铺设置更新请求
type SettingsRequest struct {
	StoreName       *string `json:"store_name"`
	LogoURL         *string `json:"logo_url"`
	PrimaryColor    *string `json:"primary_color"`
	SecondaryColor  *string `json:"secondary_color"`
	BackgroundColor *string `json:"background_color"`
	TextColor       *string `json:"text_color"`
}

// UpdateSettings 更新店铺设置
func (h *AppearanceHandler) UpdateSettings(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	settings, err := h.service.UpdateSettings(c.Request.Context(), application.SettingsCommand{
		StoreName:       req.StoreName,
		LogoURL:         req.LogoURL,
		PrimaryColor:    req.PrimaryColor,
		SecondaryColor:  req.SecondaryColor,
		BackgroundColor: req.BackgroundColor,
		TextColor:       req.TextColor,
	})
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to update store settings", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, settings)
}

// BannerRequest 轮播图创建/更新请求
type BannerRequest struct {
	ImageURL *string `json:"image_url"`
	LinkURL  *string `json:"link_url"`
	Position *int    `json:"position"`
	Active   *bool   `json:"active"`
}

// ListBanners 轮播图列表
func (h *AppearanceHandler) ListBanners(c *gin.Context) {
	banners, err := h.service.ListBanners(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list banners", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, banners)
}

// CreateBanner 新增轮播图
func (h *AppearanceHandler) CreateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	imageURL := ""
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}
	linkURL := ""
	if req.LinkURL != nil {
		linkURL = *req.LinkURL
	}
	position := 0
	if req.Position != nil {
		position = *req.Position
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	banner, err := h.service.CreateBanner(c.Request.Context(), imageURL, linkURL, position, active)
	if err != nil {
		if errors.Is(err, application.ErrMissingImage) {
			response.ErrorWithStatus(c, http.StatusBadRequest, "MISSING_IMAGE", "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to create banner", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, banner)
}

// UpdateBanner 更新轮播图
func (h *AppearanceHandler) UpdateBanner(c *gin.Context) {
	id, ok := h.numericID(c)
	if !ok {
		return
	}

	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	banner, err := h.service.UpdateBanner(c.Request.Context(), id, req.ImageURL, req.LinkURL, req.Position, req.Active)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "NOT_FOUND", "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to update banner", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, banner)
}

// DeleteBanner 删除轮播图
func (h *AppearanceHandler) DeleteBanner(c *gin.Context) {
	id, ok := h.numericID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBanner(c.Request.Context(), id); err != nil {
		logging.Error(c.Request.Context(), "Failed to delete banner", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

func (h *AppearanceHandler) numericID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "INVALID_ID", "")
		return 0, false
	}
	return uint(id), true
}
