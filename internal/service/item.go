package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/domain"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/repository"
)

var (
	itemsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_items_created_total",
			Help: "Total number of items created",
		},
	)

	itemsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_items_deleted_total",
			Help: "Total number of items removed by a delete request",
		},
	)
)

type ItemRepository interface {
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	FindAll(ctx context.Context) ([]domain.Item, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// EventPublisher receives item changes after they are stored. Publish must
// not block.
type EventPublisher interface {
	Publish(event domain.ItemEvent)
}

type ItemService struct {
	repo   ItemRepository
	events EventPublisher
}

func NewItemService(repo ItemRepository, events EventPublisher) *ItemService {
	return &ItemService{
		repo:   repo,
		events: events,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return domain.Item{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	itemsCreated.Inc()

	s.publish(domain.ItemEvent{Type: domain.ItemCreated, Item: &created})

	return created, nil
}

func (s *ItemService) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}
	if items == nil {
		items = []domain.Item{}
	}

	return items, nil
}

// DeleteItem removes the item with id. A missing item, or an id the store
// could never have issued, is not an error.
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidItemID) {
			return nil
		}
		return fmt.Errorf("s.repo.DeleteByID -> %w", err)
	}

	if deleted {
		itemsDeleted.Inc()
		s.publish(domain.ItemEvent{Type: domain.ItemDeleted, ID: id})
	}

	return nil
}

func (s *ItemService) publish(event domain.ItemEvent) {
	if s.events != nil {
		s.events.Publish(event)
	}
}
