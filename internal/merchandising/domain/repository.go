package domain

import "context"

// PositionRepository 商品排序仓储接口
type PositionRepository interface {
	// UpdatePositions 在单个事务内应用整批排序指令
	// 要么全部提交要么全部回滚，返回实际更新的行数
	UpdatePositions(ctx context.Context, items []OrderItem) (int64, error)
}
