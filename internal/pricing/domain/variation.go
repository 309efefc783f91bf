// Package domain 包含定价与优惠券校验的领域逻辑
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidSelection 所选规格不属于该商品
// 调用方应重新回落到默认规格，绝不能在有规格时退回基础价
var ErrInvalidSelection = errors.New("selected variation does not belong to product")

// Variation 参与定价的商品规格快照
type Variation struct {
	ID       uint
	Name     string
	Price    decimal.Decimal
	Position int
}

// DefaultVariation 返回 position 最小的规格，空集返回 nil
func DefaultVariation(variations []Variation) *Variation {
	if len(variations) == 0 {
		return nil
	}
	def := &variations[0]
	for i := range variations[1:] {
		if variations[i+1].Position < def.Position {
			def = &variations[i+1]
		}
	}
	return def
}

// ResolveEffectivePrice 计算商品的有效单价
// 无规格时返回基础价；有规格且未指定选择时取默认规格；
// 指定的规格不在集合内时返回 ErrInvalidSelection
func ResolveEffectivePrice(basePrice decimal.Decimal, variations []Variation, selectedID *uint) (decimal.Decimal, error) {
	if len(variations) == 0 {
		return basePrice, nil
	}

	if selectedID == nil {
		return DefaultVariation(variations).Price, nil
	}

	for i := range variations {
		if variations[i].ID == *selectedID {
			return variations[i].Price, nil
		}
	}

	return decimal.Decimal{}, ErrInvalidSelection
}
