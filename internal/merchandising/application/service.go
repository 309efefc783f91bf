// Package application 实现商品陈列排序的应用服务
package application

import (
	"context"

	"github.com/wyfcoding/storefront/internal/merchandising/domain"
)

// ReorderResult 排序结果
type ReorderResult struct {
	UpdatedCount int64 `json:"updated_count"`
}

// MerchandisingService 陈列排序应用服务
type MerchandisingService struct {
	positions domain.PositionRepository
}

// NewMerchandisingService 创建陈列排序服务
func NewMerchandisingService(positions domain.PositionRepository) *MerchandisingService {
	return &MerchandisingService{positions: positions}
}

// Reorder 校验并持久化整批排序
// 校验失败或任一更新失败时不落任何一行，重复提交同一列表结果不变
func (s *MerchandisingService) Reorder(ctx context.Context, payload []byte) (*ReorderResult, error) {
	items, err := domain.ParseReorderPayload(payload)
	if err != nil {
		return nil, err
	}

	updated, err := s.positions.UpdatePositions(ctx, items)
	if err != nil {
		return nil, err
	}

	return &ReorderResult{UpdatedCount: updated}, nil
}
