package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/mongo/inventory/internal/domain"
	"github.com/yizeng/gab/gin/mongo/inventory/internal/repository/dao"
)

var (
	ErrInvalidItemID = dao.ErrInvalidID
)

type ItemDAO interface {
	Insert(ctx context.Context, item dao.Item) (dao.Item, error)
	FindAll(ctx context.Context) ([]dao.Item, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

type ItemRepository struct {
	dao ItemDAO
}

func NewItemRepository(dao ItemDAO) *ItemRepository {
	return &ItemRepository{
		dao: dao,
	}
}

func (r *ItemRepository) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(item))
	if err != nil {
		return domain.Item{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ItemRepository) FindAll(ctx context.Context) ([]domain.Item, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	items := make([]domain.Item, 0, len(found))
	for _, item := range found {
		items = append(items, r.daoToDomain(item))
	}

	return items, nil
}

func (r *ItemRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	deleted, err := r.dao.DeleteByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("r.dao.DeleteByID -> %w", err)
	}

	return deleted, nil
}

func (r *ItemRepository) domainToDao(item domain.Item) dao.Item {
	return dao.Item{
		ID:       item.ID,
		Name:     item.Name,
		Cost:     item.Cost,
		Quantity: item.Quantity,
	}
}

func (r *ItemRepository) daoToDomain(item dao.Item) domain.Item {
	return domain.Item{
		ID:       item.ID,
		Name:     item.Name,
		Cost:     item.Cost,
		Quantity: item.Quantity,
	}
}
