// Package application 实现商品目录的应用服务
package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/pkg/logger"
)

var (
	// ErrMissingFields 缺少必填字段
	ErrMissingFields = errors.New("missing required fields")
	// ErrSlugTaken slug 已被占用
	ErrSlugTaken = errors.New("slug already taken")
)

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	Name        string
	Slug        string
	Description string
	Price       decimal.Decimal
	CategoryID  *uint
	Active      *bool
	ImageURLs   []string
}

// UpdateProductCommand 更新商品命令，nil 字段保持原值
type UpdateProductCommand struct {
	Name        *string
	Slug        *string
	Description *string
	Price       *decimal.Decimal
	CategoryID  *uint
	Active      *bool
}

// CatalogCommandService 商品目录写入服务
type CatalogCommandService struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	publisher  domain.EventPublisher
}

// NewCatalogCommandService 创建写入服务
func NewCatalogCommandService(products domain.ProductRepository, categories domain.CategoryRepository, publisher domain.EventPublisher) *CatalogCommandService {
	return &CatalogCommandService{products: products, categories: categories, publisher: publisher}
}

// CreateProduct 创建商品，slug 未指定时由名称派生
func (s *CatalogCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (uint, error) {
	if cmd.Name == "" || !cmd.Price.IsPositive() {
		return 0, ErrMissingFields
	}

	slug := domain.Slugify(cmd.Slug)
	if slug == "" {
		slug = domain.Slugify(cmd.Name)
	}
	if slug == "" {
		return 0, ErrMissingFields
	}

	taken, err := s.products.SlugExists(ctx, slug, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrSlugTaken
	}

	active := true
	if cmd.Active != nil {
		active = *cmd.Active
	}

	p := &domain.Product{
		Name:        cmd.Name,
		Slug:        slug,
		Description: cmd.Description,
		Price:       cmd.Price,
		CategoryID:  cmd.CategoryID,
		Active:      active,
	}
	for i, url := range cmd.ImageURLs {
		p.Images = append(p.Images, domain.ProductImage{URL: url, Position: i})
	}

	if err := s.products.Save(ctx, p); err != nil {
		return 0, err
	}

	s.publish(ctx, p.ID, domain.ProductCreatedEvent{
		ProductID: p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Price:     p.Price.StringFixed(2),
		Timestamp: time.Now(),
	})

	return p.ID, nil
}

// UpdateProduct 更新商品，名称变更且未显式给出 slug 时重新派生
func (s *CatalogCommandService) UpdateProduct(ctx context.Context, id uint, cmd UpdateProductCommand) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil && *cmd.Name != "" {
		p.Name = *cmd.Name
		if cmd.Slug == nil {
			p.Slug = domain.Slugify(p.Name)
		}
	}
	if cmd.Slug != nil && *cmd.Slug != "" {
		p.Slug = domain.Slugify(*cmd.Slug)
	}
	if cmd.Description != nil {
		p.Description = *cmd.Description
	}
	if cmd.Price != nil {
		if !cmd.Price.IsPositive() {
			return nil, ErrMissingFields
		}
		p.Price = *cmd.Price
	}
	if cmd.CategoryID != nil {
		p.CategoryID = cmd.CategoryID
	}
	if cmd.Active != nil {
		p.Active = *cmd.Active
	}

	taken, err := s.products.SlugExists(ctx, p.Slug, p.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publish(ctx, p.ID, domain.ProductUpdatedEvent{
		ProductID: p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Price:     p.Price.StringFixed(2),
		Active:    p.Active,
		Timestamp: time.Now(),
	})

	return p, nil
}

// DeleteProduct 删除商品及其图片与规格
func (s *CatalogCommandService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, domain.ProductDeletedEvent{ProductID: id, Timestamp: time.Now()})
	return nil
}

// AddVariation 为商品追加规格
func (s *CatalogCommandService) AddVariation(ctx context.Context, productID uint, name string, price decimal.Decimal, position int) (*domain.ProductVariation, error) {
	if name == "" || !price.IsPositive() {
		return nil, ErrMissingFields
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	v := &domain.ProductVariation{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Position:  position,
	}
	if err := s.products.SaveVariation(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// CreateCategory 创建分类并可选归入商品
func (s *CatalogCommandService) CreateCategory(ctx context.Context, name, slug, imageURL string, productIDs []uint) (*domain.Category, error) {
	if name == "" {
		return nil, ErrMissingFields
	}

	normalized := domain.Slugify(slug)
	if normalized == "" {
		normalized = domain.Slugify(name)
	}

	c := &domain.Category{Name: name, Slug: normalized, ImageURL: imageURL}
	if err := s.categories.Save(ctx, c); err != nil {
		return nil, err
	}
	if err := s.categories.AssignProducts(ctx, c.ID, productIDs); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory 删除分类，商品解除关联
func (s *CatalogCommandService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, domain.CategoryDeletedEvent{CategoryID: id, Timestamp: time.Now()})
	return nil
}

// publish 发布领域事件，失败只记日志不阻塞主流程
func (s *CatalogCommandService) publish(ctx context.Context, id uint, event any) {
	if err := s.publisher.Publish(ctx, strconv.FormatUint(uint64(id), 10), event); err != nil {
		logger.Warn(ctx, "Failed to publish catalog event", "error", err)
	}
}
