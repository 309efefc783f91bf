package domain

import "time"

// ProductCreatedEvent 商品创建事件
type ProductCreatedEvent struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Price     string    `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductUpdatedEvent 商品更新事件
type ProductUpdatedEvent struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Price     string    `json:"price"`
	Active    bool      `json:"active"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductDeletedEvent 商品删除事件
type ProductDeletedEvent struct {
	ProductID uint      `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CategoryDeletedEvent 分类删除事件，商品解除关联
type CategoryDeletedEvent struct {
	CategoryID uint      `json:"category_id"`
	Timestamp  time.Time `json:"timestamp"`
}
