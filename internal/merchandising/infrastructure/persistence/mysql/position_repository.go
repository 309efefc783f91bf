package mysql

import (
	"context"

	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	"github.com/wyfcoding/storefront/internal/merchandising/domain"
	pkgdb "github.com/wyfcoding/storefront/pkg/db"
	"gorm.io/gorm"
)

type positionRepository struct{ db *pkgdb.DB }

// NewPositionRepository 创建排序仓储实现
func NewPositionRepository(database *pkgdb.DB) domain.PositionRepository {
	return &positionRepository{db: database}
}

// UpdatePositions 整批更新在同一事务内执行
// 并发的排序提交彼此串行化，不会交错出两种顺序的混合结果
func (r *positionRepository) UpdatePositions(ctx context.Context, items []domain.OrderItem) (int64, error) {
	var updated int64
	err := r.db.WithTx(ctx, func(tx *gorm.DB) error {
		updated = 0
		for _, item := range items {
			res := tx.Model(&catalogdomain.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("position", item.Position)
			if res.Error != nil {
				return res.Error
			}
			updated += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
