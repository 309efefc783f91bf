// Package domain 包含商品陈列排序的校验逻辑
package domain

import (
	"encoding/json"
	"errors"
)

var (
	// ErrInvalidPayload 请求体不是合法的数组
	ErrInvalidPayload = errors.New("reorder payload must be an array")
	// ErrInvalidItem 数组元素缺少数字 id 或 position，或 position 为负
	ErrInvalidItem = errors.New("reorder item must carry a numeric id and a non-negative position")
)

// OrderItem 一条排序指令，position 由调用方指定
type OrderItem struct {
	ProductID uint `json:"id"`
	Position  int  `json:"position"`
}

// ParseReorderPayload 将宽松的 JSON 请求体规范化为排序指令
// 任一元素非法则整体失败，调用方不得部分应用
func ParseReorderPayload(data []byte) ([]OrderItem, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, ErrInvalidPayload
	}

	items := make([]OrderItem, 0, len(elements))
	for _, raw := range elements {
		var loose struct {
			ID       *json.Number `json:"id"`
			Position *json.Number `json:"position"`
		}
		if err := json.Unmarshal(raw, &loose); err != nil {
			return nil, ErrInvalidItem
		}
		if loose.ID == nil || loose.Position == nil {
			return nil, ErrInvalidItem
		}

		id, err := loose.ID.Int64()
		if err != nil || id <= 0 {
			return nil, ErrInvalidItem
		}
		position, err := loose.Position.Int64()
		if err != nil || position < 0 {
			return nil, ErrInvalidItem
		}

		items = append(items, OrderItem{ProductID: uint(id), Position: int(position)})
	}

	return items, nil
}
