package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/merchandising/domain"
)

type fakePositionRepo struct {
	calls [][]domain.OrderItem
	err   error
}

func (f *fakePositionRepo) UpdatePositions(ctx context.Context, items []domain.OrderItem) (int64, error) {
	f.calls = append(f.calls, items)
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(items)), nil
}

func TestReorder_Valid(t *testing.T) {
	repo := &fakePositionRepo{}
	service := NewMerchandisingService(repo)

	result, err := service.Reorder(context.Background(), []byte(`[{"id":3,"position":0},{"id":1,"position":1}]`))

	require.NoError(t, err)
	assert.Equal(t, int64(2), result.UpdatedCount)
	require.Len(t, repo.calls, 1)
	assert.Equal(t, []domain.OrderItem{
		{ProductID: 3, Position: 0},
		{ProductID: 1, Position: 1},
	}, repo.calls[0])
}

// 校验失败时不触达仓储，保证不会部分应用。
func TestReorder_InvalidPayloadSkipsRepository(t *testing.T) {
	repo := &fakePositionRepo{}
	service := NewMerchandisingService(repo)

	_, err := service.Reorder(context.Background(), []byte(`{"id":1}`))
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = service.Reorder(context.Background(), []byte(`[{"id":1,"position":0},{"id":0,"position":1}]`))
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	assert.Empty(t, repo.calls)
}

func TestReorder_RepositoryError(t *testing.T) {
	repoErr := errors.New("db down")
	repo := &fakePositionRepo{err: repoErr}
	service := NewMerchandisingService(repo)

	_, err := service.Reorder(context.Background(), []byte(`[{"id":1,"position":0}]`))

	assert.ErrorIs(t, err, repoErr)
}

// 重复提交同一列表是幂等的：两次调用产生相同的指令。
func TestReorder_RepeatedSubmission(t *testing.T) {
	repo := &fakePositionRepo{}
	service := NewMerchandisingService(repo)
	payload := []byte(`[{"id":2,"position":0},{"id":1,"position":1}]`)

	first, err := service.Reorder(context.Background(), payload)
	require.NoError(t, err)
	second, err := service.Reorder(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, repo.calls, 2)
	assert.Equal(t, repo.calls[0], repo.calls[1])
}
