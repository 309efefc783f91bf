// Package application 负责拉取候选商品并调用排序逻辑
package application

import (
	"context"

	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	pricingdomain "github.com/wyfcoding/storefront/internal/pricing/domain"
	"github.com/wyfcoding/storefront/internal/recommendation/domain"
)

// RecommendationService 相似商品应用服务
type RecommendationService struct {
	products catalogdomain.ProductRepository
}

// NewRecommendationService 创建相似商品服务
func NewRecommendationService(products catalogdomain.ProductRepository) *RecommendationService {
	return &RecommendationService{products: products}
}

// SimilarProducts 返回与目标商品同分类的相似商品
// 无分类的商品没有候选集合，直接返回空结果；
// 目标价取有效单价：有规格时为默认规格价，无规格时为基础价
func (s *RecommendationService) SimilarProducts(ctx context.Context, productID uint, limit int) ([]domain.Candidate, error) {
	target, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if target.CategoryID == nil {
		return []domain.Candidate{}, nil
	}

	variations := make([]pricingdomain.Variation, 0, len(target.Variations))
	for _, v := range target.Variations {
		variations = append(variations, pricingdomain.Variation{
			ID:       v.ID,
			Price:    v.Price,
			Position: v.Position,
		})
	}
	targetPrice, err := pricingdomain.ResolveEffectivePrice(target.Price, variations, nil)
	if err != nil {
		return nil, err
	}

	pool, err := s.products.ListActiveByCategory(ctx, *target.CategoryID)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(pool))
	for _, p := range pool {
		if p.ID == target.ID {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			ProductID: p.ID,
			Slug:      p.Slug,
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.MainImageURL(),
		})
	}

	return domain.RankSimilar(targetPrice, candidates, limit), nil
}
