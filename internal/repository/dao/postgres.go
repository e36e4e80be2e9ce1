package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type PostgresItemDAO struct {
	db *gorm.DB
}

func NewPostgresItemDAO(db *gorm.DB) *PostgresItemDAO {
	return &PostgresItemDAO{
		db: db,
	}
}

func (d *PostgresItemDAO) Insert(ctx context.Context, item Item) (Item, error) {
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()

	if err := d.db.WithContext(ctx).Create(&item).Error; err != nil {
		return Item{}, fmt.Errorf("d.db.Create -> %w", err)
	}

	return item, nil
}

func (d *PostgresItemDAO) FindAll(ctx context.Context) ([]Item, error) {
	items := []Item{}
	if err := d.db.WithContext(ctx).Order("created_at").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("d.db.Find -> %w", err)
	}

	return items, nil
}

func (d *PostgresItemDAO) DeleteByID(ctx context.Context, id string) (bool, error) {
	result := d.db.WithContext(ctx).Where("id = ?", id).Delete(&Item{})
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.InvalidTextRepresentation {
			return false, ErrInvalidID
		}

		return false, fmt.Errorf("d.db.Delete -> %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}
