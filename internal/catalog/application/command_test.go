package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type fakeProductRepo struct {
	domain.ProductRepository
	saved      []*domain.Product
	existing   *domain.Product
	takenSlugs map[string]bool
}

func (f *fakeProductRepo) Save(ctx context.Context, product *domain.Product) error {
	if product.ID == 0 {
		product.ID = uint(len(f.saved) + 1)
	}
	f.saved = append(f.saved, product)
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	if f.existing == nil || f.existing.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.existing, nil
}

func (f *fakeProductRepo) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return f.takenSlugs[slug], nil
}

type capturedEvent struct {
	key   string
	event any
}

type fakePublisher struct {
	published []capturedEvent
}

func (f *fakePublisher) Publish(ctx context.Context, key string, event any) error {
	f.published = append(f.published, capturedEvent{key: key, event: event})
	return nil
}

func newCommandService(products *fakeProductRepo, publisher *fakePublisher) *CatalogCommandService {
	return NewCatalogCommandService(products, nil, publisher)
}

func TestCreateProduct_DerivesSlugFromName(t *testing.T) {
	repo := &fakeProductRepo{takenSlugs: map[string]bool{}}
	publisher := &fakePublisher{}
	service := newCommandService(repo, publisher)

	id, err := service.CreateProduct(context.Background(), CreateProductCommand{
		Name:  "Blue T-Shirt",
		Price: decimal.NewFromFloat(19.99),
	})

	require.NoError(t, err)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, id, repo.saved[0].ID)
	assert.Equal(t, "blue-t-shirt", repo.saved[0].Slug)
	assert.True(t, repo.saved[0].Active)

	require.Len(t, publisher.published, 1)
	created, ok := publisher.published[0].event.(domain.ProductCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "19.99", created.Price)
}

func TestCreateProduct_ExplicitSlugWins(t *testing.T) {
	repo := &fakeProductRepo{takenSlugs: map[string]bool{}}
	service := newCommandService(repo, &fakePublisher{})

	_, err := service.CreateProduct(context.Background(), CreateProductCommand{
		Name:  "Blue T-Shirt",
		Slug:  "Custom Slug",
		Price: decimal.NewFromInt(10),
	})

	require.NoError(t, err)
	assert.Equal(t, "custom-slug", repo.saved[0].Slug)
}

func TestCreateProduct_Validation(t *testing.T) {
	service := newCommandService(&fakeProductRepo{takenSlugs: map[string]bool{}}, &fakePublisher{})
	ctx := context.Background()

	_, err := service.CreateProduct(ctx, CreateProductCommand{Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = service.CreateProduct(ctx, CreateProductCommand{Name: "X", Price: decimal.Zero})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = service.CreateProduct(ctx, CreateProductCommand{Name: "X", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreateProduct_SlugTaken(t *testing.T) {
	repo := &fakeProductRepo{takenSlugs: map[string]bool{"widget": true}}
	service := newCommandService(repo, &fakePublisher{})

	_, err := service.CreateProduct(context.Background(), CreateProductCommand{
		Name:  "Widget",
		Price: decimal.NewFromInt(10),
	})

	assert.ErrorIs(t, err, ErrSlugTaken)
	assert.Empty(t, repo.saved)
}

func TestCreateProduct_ImagePositions(t *testing.T) {
	repo := &fakeProductRepo{takenSlugs: map[string]bool{}}
	service := newCommandService(repo, &fakePublisher{})

	_, err := service.CreateProduct(context.Background(), CreateProductCommand{
		Name:      "Widget",
		Price:     decimal.NewFromInt(10),
		ImageURLs: []string{"a.jpg", "b.jpg"},
	})

	require.NoError(t, err)
	images := repo.saved[0].Images
	require.Len(t, images, 2)
	assert.Equal(t, 0, images[0].Position)
	assert.Equal(t, "a.jpg", images[0].URL)
	assert.Equal(t, 1, images[1].Position)
}

// 名称变更且未显式给出 slug 时重新派生。
func TestUpdateProduct_SlugFollowsName(t *testing.T) {
	repo := &fakeProductRepo{
		takenSlugs: map[string]bool{},
		existing: &domain.Product{
			Model: gorm.Model{ID: 1},
			Name:  "Old Name",
			Slug:  "old-name",
			Price: decimal.NewFromInt(10),
		},
	}
	service := newCommandService(repo, &fakePublisher{})
	name := "New Name"

	p, err := service.UpdateProduct(context.Background(), 1, UpdateProductCommand{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "new-name", p.Slug)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	service := newCommandService(&fakeProductRepo{takenSlugs: map[string]bool{}}, &fakePublisher{})
	name := "X"

	_, err := service.UpdateProduct(context.Background(), 99, UpdateProductCommand{Name: &name})

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAddVariation_Validation(t *testing.T) {
	repo := &fakeProductRepo{takenSlugs: map[string]bool{}}
	service := newCommandService(repo, &fakePublisher{})

	_, err := service.AddVariation(context.Background(), 1, "", decimal.NewFromInt(10), 0)
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = service.AddVariation(context.Background(), 1, "S", decimal.Zero, 0)
	assert.ErrorIs(t, err, ErrMissingFields)
}
