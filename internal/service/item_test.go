package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/domain"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/repository"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/repository/dao"
)

type recorder struct {
	mu     sync.Mutex
	events []domain.ItemEvent
}

func (r *recorder) Publish(event domain.ItemEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

type stubRepo struct {
	items     []domain.Item
	deleteErr error
	err       error
}

func (s *stubRepo) Create(context.Context, domain.Item) (domain.Item, error) {
	return domain.Item{}, s.err
}

func (s *stubRepo) FindAll(context.Context) ([]domain.Item, error) {
	return s.items, s.err
}

func (s *stubRepo) DeleteByID(context.Context, string) (bool, error) {
	return false, s.deleteErr
}

func newMemoryService(events EventPublisher) *ItemService {
	return NewItemService(repository.NewItemRepository(dao.NewMemoryItemDAO()), events)
}

func TestItemService_CreateThenList(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	svc := newMemoryService(rec)

	created, err := svc.CreateItem(ctx, domain.Item{Name: "pen", Cost: 0, Quantity: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created, items[0])

	require.Len(t, rec.events, 1)
	assert.Equal(t, domain.ItemCreated, rec.events[0].Type)
	assert.Equal(t, created, *rec.events[0].Item)
}

func TestItemService_Delete(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	svc := newMemoryService(rec)

	created, err := svc.CreateItem(ctx, domain.Item{Name: "pen"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, created.ID))

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// deleting again, or deleting something that never existed, is a no-op
	require.NoError(t, svc.DeleteItem(ctx, created.ID))
	require.NoError(t, svc.DeleteItem(ctx, "64b7f0c2a1b2c3d4e5f60718"))
	require.NoError(t, svc.DeleteItem(ctx, "not-an-id"))

	require.Len(t, rec.events, 2)
	assert.Equal(t, domain.ItemEvent{Type: domain.ItemDeleted, ID: created.ID}, rec.events[1])
}

func TestItemService_ListEmpty(t *testing.T) {
	svc := NewItemService(&stubRepo{}, nil)

	items, err := svc.ListItems(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestItemService_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	rec := &recorder{}
	svc := NewItemService(&stubRepo{err: boom, deleteErr: boom}, rec)

	_, err := svc.CreateItem(ctx, domain.Item{Name: "pen"})
	assert.ErrorIs(t, err, boom)

	_, err = svc.ListItems(ctx)
	assert.ErrorIs(t, err, boom)

	err = svc.DeleteItem(ctx, "x")
	assert.ErrorIs(t, err, boom)

	assert.Empty(t, rec.events)
}

func TestItemService_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(nil)

	var wg sync.WaitGroup
	results := make([]domain.Item, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			item, err := svc.CreateItem(ctx, domain.Item{Name: "pen", Cost: 1, Quantity: 1})
			assert.NoError(t, err)
			results[i] = item
		}(i)
	}
	wg.Wait()

	assert.NotEqual(t, results[0].ID, results[1].ID)

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
