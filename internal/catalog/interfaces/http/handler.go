// Package http 负责处理商品目录相关的 HTTP 请求
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/storefront/internal/catalog/application"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

// CatalogHandler 商品目录 HTTP 处理器
type CatalogHandler struct {
	cmd   *application.CatalogCommandService
	query *application.CatalogQueryService
}

// NewCatalogHandler 创建处理器实例
func NewCatalogHandler(cmd *application.CatalogCommandService, query *application.CatalogQueryService) *CatalogHandler {
	return &CatalogHandler{cmd: cmd, query: query}
}

// RegisterRoutes 注册路由
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.GetProduct)
		products.PATCH("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.GET("/:id/variations", h.ListVariations)
		products.POST("/:id/variations", h.AddVariation)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Name        *string  `json:"name"`
	Slug        *string  `json:"slug"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *uint    `json:"category_id"`
	Active      *bool    `json:"active"`
	ImageURLs   []string `json:"image_urls"`
}

// VariationRequest 规格创建请求
type VariationRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
	Position int     `json:"position"`
}

// CategoryRequest 分类创建请求
type CategoryRequest struct {
	Name       string `json:"name" binding:"required"`
	Slug       string `json:"slug"`
	ImageURL   string `json:"image_url"`
	ProductIDs []uint `json:"product_ids"`
}

// CreateProduct 创建商品
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	if req.Name == nil || req.Price == nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "MISSING_FIELDS", "")
		return
	}

	cmd := application.CreateProductCommand{
		Name:       *req.Name,
		Price:      decimal.NewFromFloat(*req.Price),
		CategoryID: req.CategoryID,
		Active:     req.Active,
		ImageURLs:  req.ImageURLs,
	}
	if req.Slug != nil {
		cmd.Slug = *req.Slug
	}
	if req.Description != nil {
		cmd.Description = *req.Description
	}

	id, err := h.cmd.CreateProduct(c.Request.Context(), cmd)
	if err != nil {
		h.writeCommandError(c, err, "Failed to create product")
		return
	}

	response.Success(c, gin.H{"id": id})
}

// GetProduct 按 ID 或 slug 查询商品
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	p, err := h.query.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "NOT_FOUND", "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to load product", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, toProductDetail(p))
}

// ListProducts 商品列表，支持 name 前缀搜索与分类过滤
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if categoryParam := c.Query("category"); categoryParam != "" {
		categoryID, err := strconv.ParseUint(categoryParam, 10, 64)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "INVALID_CATEGORY", "")
			return
		}
		products, err := h.query.ListActiveByCategory(ctx, uint(categoryID))
		if err != nil {
			logging.Error(ctx, "Failed to list products by category", "error", err)
			response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
			return
		}
		response.Success(c, toProductSummaries(products))
		return
	}

	var (
		products []*domain.Product
		err      error
	)
	if name := c.Query("name"); name != "" {
		products, err = h.query.SearchProducts(ctx, name)
	} else {
		products, err = h.query.ListProducts(ctx)
	}
	if err != nil {
		logging.Error(ctx, "Failed to list products", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, toProductSummaries(products))
}

// UpdateProduct 更新商品
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.numericID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	cmd := application.UpdateProductCommand{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Active:      req.Active,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		cmd.Price = &price
	}

	p, err := h.cmd.UpdateProduct(c.Request.Context(), id, cmd)
	if err != nil {
		h.writeCommandError(c, err, "Failed to update product")
		return
	}

	response.Success(c, toProductDetail(p))
}

// DeleteProduct 删除商品
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.numericID(c)
	if !ok {
		return
	}

	if err := h.cmd.DeleteProduct(c.Request.Context(), id); err != nil {
		h.writeCommandError(c, err, "Failed to delete product")
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

// ListVariations 商品规格列表
func (h *CatalogHandler) ListVariations(c *gin.Context) {
	id, ok := h.numericID(c)
	if !ok {
		return
	}

	variations, err := h.query.ListVariations(c.Request.Context(), id)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list variations", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	out := make([]gin.H, 0, len(variations))
	for _, v := range variations {
		out = append(out, gin.H{
			"id":         v.ID,
			"product_id": v.ProductID,
			"name":       v.Name,
			"price":      v.Price.StringFixed(2),
			"position":   v.Position,
		})
	}
	response.Success(c, out)
}

// AddVariation 追加商品规格
func (h *CatalogHandler) AddVariation(c *gin.Context) {
	id, ok := h.numericID(c)
	if !ok {
		return
	}

	var req VariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	v, err := h.cmd.AddVariation(c.Request.Context(), id, req.Name, decimal.NewFromFloat(req.Price), req.Position)
	if err != nil {
		h.writeCommandError(c, err, "Failed to add variation")
		return
	}

	response.Success(c, gin.H{
		"id":         v.ID,
		"product_id": v.ProductID,
		"name":       v.Name,
		"price":      v.Price.StringFixed(2),
		"position":   v.Position,
	})
}

// ListCategories 分类列表
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.query.ListCategories(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list categories", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	category, err := h.cmd.CreateCategory(c.Request.Context(), req.Name, req.Slug, req.ImageURL, req.ProductIDs)
	if err != nil {
		h.writeCommandError(c, err, "Failed to create category")
		return
	}

	response.Success(c, category)
}

// DeleteCategory 删除分类并解除商品关联
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.numericID(c)
	if !ok {
		return
	}

	if err := h.cmd.DeleteCategory(c.Request.Context(), id); err != nil {
		h.writeCommandError(c, err, "Failed to delete category")
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

func (h *CatalogHandler) numericID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "INVALID_ID", "")
		return 0, false
	}
	return uint(id), true
}

func (h *CatalogHandler) writeCommandError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, application.ErrMissingFields):
		response.ErrorWithStatus(c, http.StatusBadRequest, "MISSING_FIELDS", "")
	case errors.Is(err, application.ErrSlugTaken):
		response.ErrorWithStatus(c, http.StatusConflict, "SLUG_TAKEN", "")
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, "NOT_FOUND", "")
	default:
		logging.Error(c.Request.Context(), msg, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
	}
}

func toProductDetail(p *domain.Product) gin.H {
	images := make([]gin.H, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, gin.H{"id": img.ID, "url": img.URL, "position": img.Position})
	}
	variations := make([]gin.H, 0, len(p.Variations))
	for _, v := range p.Variations {
		variations = append(variations, gin.H{
			"id":         v.ID,
			"product_id": v.ProductID,
			"name":       v.Name,
			"price":      v.Price.StringFixed(2),
			"position":   v.Position,
		})
	}

	return gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"price":       p.Price.StringFixed(2),
		"category_id": p.CategoryID,
		"active":      p.Active,
		"position":    p.Position,
		"images":      images,
		"variations":  variations,
	}
}

func toProductSummaries(products []*domain.Product) []gin.H {
	out := make([]gin.H, 0, len(products))
	for _, p := range products {
		var imageURL *string
		if url := p.MainImageURL(); url != "" {
			imageURL = &url
		}
		out = append(out, gin.H{
			"id":        p.ID,
			"name":      p.Name,
			"slug":      p.Slug,
			"price":     p.Price.StringFixed(2),
			"position":  p.Position,
			"active":    p.Active,
			"image_url": imageURL,
		})
	}
	return out
}
