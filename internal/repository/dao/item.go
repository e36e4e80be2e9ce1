package dao

import (
	"errors"
	"time"
)

var (
	// ErrInvalidID means the id can never match a stored item for this driver.
	ErrInvalidID = errors.New("invalid item id")
)

// Item is the storage shape shared by every driver. ID is the driver's
// string form of the key (ObjectID hex for mongo and memory, UUID for
// postgres).
type Item struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;default:''"`
	Cost      float64   `gorm:"not null;default:0"`
	Quantity  float64   `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
}
