package mysql

import (
	"context"

	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type categoryRepository struct{ db *gorm.DB }

// NewCategoryRepository 创建分类仓储实现
func NewCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Save(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

// Delete 先解除商品关联再删除分类，两步在同一事务内
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Category{}, id).Error
	})
}

func (r *categoryRepository) AssignProducts(ctx context.Context, categoryID uint, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id IN ?", productIDs).
		Update("category_id", categoryID).Error
}
