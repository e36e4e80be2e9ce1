package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/domain"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/repository/dao"
)

type failingDAO struct {
	err error
}

func (f failingDAO) Insert(context.Context, dao.Item) (dao.Item, error) { return dao.Item{}, f.err }
func (f failingDAO) FindAll(context.Context) ([]dao.Item, error)        { return nil, f.err }
func (f failingDAO) DeleteByID(context.Context, string) (bool, error)   { return false, f.err }

func TestItemRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(dao.NewMemoryItemDAO())

	items, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{}, items)

	created, err := repo.Create(ctx, domain.Item{ID: "ignored", Name: "pen", Cost: 1, Quantity: 2})
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", created.ID)
	assert.Equal(t, domain.Item{ID: created.ID, Name: "pen", Cost: 1, Quantity: 2}, created)

	items, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Item{created}, items)

	deleted, err := repo.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.DeleteByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidItemID)
}

func TestItemRepository_WrapsErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	repo := NewItemRepository(failingDAO{err: boom})

	_, err := repo.Create(ctx, domain.Item{})
	assert.ErrorIs(t, err, boom)

	_, err = repo.FindAll(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = repo.DeleteByID(ctx, "x")
	assert.ErrorIs(t, err, boom)
}
