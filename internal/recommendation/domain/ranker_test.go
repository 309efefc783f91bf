package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankSimilar_Scoring(t *testing.T) {
	target := decimal.NewFromInt(100)
	candidates := []Candidate{
		{ProductID: 1, Price: decimal.NewFromInt(90)},
		{ProductID: 2, Price: decimal.NewFromInt(150)},
		{ProductID: 3, Price: decimal.NewFromInt(105)},
	}

	ranked := RankSimilar(target, candidates, 10)

	require.Len(t, ranked, 3)
	// 90 与 105 都在目标价 120% 以内，150 超出
	assert.Equal(t, uint(1), ranked[0].ProductID)
	assert.Equal(t, 2, ranked[0].Score)
	assert.Equal(t, uint(3), ranked[1].ProductID)
	assert.Equal(t, 2, ranked[1].Score)
	assert.Equal(t, uint(2), ranked[2].ProductID)
	assert.Equal(t, 1, ranked[2].Score)
}

func TestRankSimilar_ThresholdBoundary(t *testing.T) {
	target := decimal.NewFromInt(100)
	candidates := []Candidate{
		{ProductID: 1, Price: decimal.NewFromInt(120)},
		{ProductID: 2, Price: decimal.NewFromFloat(120.01)},
	}

	ranked := RankSimilar(target, candidates, 10)

	// 恰好等于 120% 仍然得高分
	assert.Equal(t, 2, ranked[0].Score)
	assert.Equal(t, uint(1), ranked[0].ProductID)
	assert.Equal(t, 1, ranked[1].Score)
}

// 同分候选保持输入顺序。
func TestRankSimilar_StableTies(t *testing.T) {
	target := decimal.NewFromInt(100)
	candidates := []Candidate{
		{ProductID: 1, Price: decimal.NewFromInt(200)},
		{ProductID: 2, Price: decimal.NewFromInt(50)},
		{ProductID: 3, Price: decimal.NewFromInt(300)},
		{ProductID: 4, Price: decimal.NewFromInt(60)},
	}

	ranked := RankSimilar(target, candidates, 10)

	require.Len(t, ranked, 4)
	assert.Equal(t, uint(2), ranked[0].ProductID)
	assert.Equal(t, uint(4), ranked[1].ProductID)
	assert.Equal(t, uint(1), ranked[2].ProductID)
	assert.Equal(t, uint(3), ranked[3].ProductID)
}

func TestRankSimilar_Truncation(t *testing.T) {
	target := decimal.NewFromInt(100)
	candidates := make([]Candidate, 15)
	for i := range candidates {
		candidates[i] = Candidate{ProductID: uint(i + 1), Price: decimal.NewFromInt(100)}
	}

	assert.Len(t, RankSimilar(target, candidates, 10), 10)
	assert.Len(t, RankSimilar(target, candidates, 3), 3)
	// limit 非法时回落到默认值
	assert.Len(t, RankSimilar(target, candidates, 0), DefaultLimit)
	assert.Len(t, RankSimilar(target, candidates, -1), DefaultLimit)
}

// 排序不修改调用方的切片，重复调用结果一致。
func TestRankSimilar_Deterministic(t *testing.T) {
	target := decimal.NewFromInt(100)
	candidates := []Candidate{
		{ProductID: 1, Price: decimal.NewFromInt(150)},
		{ProductID: 2, Price: decimal.NewFromInt(90)},
	}

	first := RankSimilar(target, candidates, 10)
	second := RankSimilar(target, candidates, 10)

	assert.Equal(t, first, second)
	assert.Equal(t, uint(1), candidates[0].ProductID)
	assert.Equal(t, 0, candidates[0].Score)
}

func TestRankSimilar_CheaperNeverPenalized(t *testing.T) {
	target := decimal.NewFromInt(100)
	candidates := []Candidate{
		{ProductID: 1, Price: decimal.NewFromInt(1)},
	}

	ranked := RankSimilar(target, candidates, 10)
	assert.Equal(t, 2, ranked[0].Score)
}
