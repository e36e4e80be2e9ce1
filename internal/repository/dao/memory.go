package dao

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryItemDAO keeps items in process. Ids are ObjectID hex strings so
// clients see the same shape as with the mongo driver.
type MemoryItemDAO struct {
	mu    sync.RWMutex
	items map[string]Item
	order []string
}

func NewMemoryItemDAO() *MemoryItemDAO {
	return &MemoryItemDAO{
		items: make(map[string]Item),
	}
}

func (d *MemoryItemDAO) Insert(ctx context.Context, item Item) (Item, error) {
	if err := ctx.Err(); err != nil {
		return Item{}, err
	}

	id := primitive.NewObjectID()
	item.ID = id.Hex()
	item.CreatedAt = time.Now().UTC()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.items[item.ID] = item
	d.order = append(d.order, item.ID)

	return item, nil
}

func (d *MemoryItemDAO) FindAll(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	items := make([]Item, 0, len(d.items))
	for _, id := range d.order {
		items = append(items, d.items[id])
	}

	return items, nil
}

func (d *MemoryItemDAO) DeleteByID(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrInvalidID
	}
	// keys are stored in the lowercase form Hex returns
	id = objectID.Hex()

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.items[id]; !ok {
		return false, nil
	}
	delete(d.items, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}

	return true, nil
}
