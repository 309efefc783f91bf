// Package domain 实现相似商品的打分与排序
package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultLimit 相似商品默认返回数量
const DefaultLimit = 10

// 价格接近度奖励的上限倍数：不高于目标价 120% 的候选得高分
var proximityFactor = decimal.NewFromFloat(1.2)

const (
	scoreBase      = 1
	scoreProximate = 2
)

// Candidate 相似商品候选
type Candidate struct {
	ProductID uint
	Slug      string
	Name      string
	Price     decimal.Decimal
	ImageURL  string
	Score     int
}

// RankSimilar 对候选集合打分并排序
// 价格不超过目标价 120% 的候选得 2 分，其余得 1 分，便宜永远不减分；
// 按分数降序稳定排序，同分保持候选集合的原始顺序，结果截断到 limit
func RankSimilar(targetPrice decimal.Decimal, candidates []Candidate, limit int) []Candidate {
	if limit <= 0 {
		limit = DefaultLimit
	}

	threshold := targetPrice.Mul(proximityFactor)

	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	for i := range ranked {
		if ranked[i].Price.LessThanOrEqual(threshold) {
			ranked[i].Score = scoreProximate
		} else {
			ranked[i].Score = scoreBase
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
