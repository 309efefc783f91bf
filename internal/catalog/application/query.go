package application

import (
	"context"
	"strconv"
	"strings"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

const (
	defaultListLimit   = 50
	searchPrefixLength = 3
	searchLimit        = 10
)

// CatalogQueryService 商品目录查询服务
type CatalogQueryService struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
}

// NewCatalogQueryService 创建查询服务
func NewCatalogQueryService(products domain.ProductRepository, categories domain.CategoryRepository) *CatalogQueryService {
	return &CatalogQueryService{products: products, categories: categories}
}

// GetProduct 按数字 ID 或 slug 查询商品
func (s *CatalogQueryService) GetProduct(ctx context.Context, idOrSlug string) (*domain.Product, error) {
	if id, err := strconv.ParseUint(idOrSlug, 10, 64); err == nil {
		return s.products.GetByID(ctx, uint(id))
	}
	return s.products.GetBySlug(ctx, idOrSlug)
}

// ListProducts 按 position 顺序返回商品列表
func (s *CatalogQueryService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx, defaultListLimit)
}

// SearchProducts 按名称前缀搜索，只取前三个字符做前缀
func (s *CatalogQueryService) SearchProducts(ctx context.Context, name string) ([]*domain.Product, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return s.products.List(ctx, defaultListLimit)
	}
	prefix := trimmed
	if len(prefix) > searchPrefixLength {
		prefix = prefix[:searchPrefixLength]
	}
	return s.products.SearchByNamePrefix(ctx, prefix, searchLimit)
}

// ListActiveByCategory 返回分类下的上架商品
func (s *CatalogQueryService) ListActiveByCategory(ctx context.Context, categoryID uint) ([]*domain.Product, error) {
	return s.products.ListActiveByCategory(ctx, categoryID)
}

// ListVariations 返回商品规格，按 position 升序
func (s *CatalogQueryService) ListVariations(ctx context.Context, productID uint) ([]domain.ProductVariation, error) {
	return s.products.ListVariations(ctx, productID)
}

// GetCategory 查询分类
func (s *CatalogQueryService) GetCategory(ctx context.Context, id uint) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// ListCategories 返回全部分类
func (s *CatalogQueryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}
