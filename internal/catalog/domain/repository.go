package domain

import "context"

// ProductRepository 商品仓储接口
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	// GetByID 返回商品及按 position 排序的图片与规格
	GetByID(ctx context.Context, id uint) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	// List 按 position 升序排列，position 为空的排在最后
	List(ctx context.Context, limit int) ([]*Product, error)
	// SearchByNamePrefix 按名称前缀模糊匹配
	SearchByNamePrefix(ctx context.Context, prefix string, limit int) ([]*Product, error)
	// ListActiveByCategory 返回分类下的上架商品，保持仓储自然顺序
	ListActiveByCategory(ctx context.Context, categoryID uint) ([]*Product, error)
	// Delete 删除商品及其图片与规格，单事务执行
	Delete(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	// ListVariations 返回商品规格，按 position 升序
	ListVariations(ctx context.Context, productID uint) ([]ProductVariation, error)
	SaveVariation(ctx context.Context, variation *ProductVariation) error
}

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	// Delete 删除分类并解除其商品关联，单事务执行
	Delete(ctx context.Context, id uint) error
	// AssignProducts 将一批商品归入分类
	AssignProducts(ctx context.Context, categoryID uint, productIDs []uint) error
}

// EventPublisher 领域事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}
