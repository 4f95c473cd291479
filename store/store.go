// Package store is the GORM-backed persistence layer. Order assembly goes
// through the unit of work in work.go; everything else is plain reads and
// writes on the shared handle.
package store

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/models"
)

type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

func New(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// DB exposes the raw handle for the CRUD controllers.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// FindByID loads an order with its items for the status engine.
func (s *Store) FindByID(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SaveStatus persists the order's status fields without touching items.
func (s *Store) SaveStatus(o *models.Order) error {
	return s.db.Model(o).Updates(map[string]interface{}{
		"status":         o.Status,
		"payment_status": o.PaymentStatus,
	}).Error
}

// Find looks up the inventory ledger row for a (product, size, color) key.
func (s *Store) Find(productID uint, size, color string) (*models.Inventory, error) {
	var inv models.Inventory
	err := s.db.Where("product_id = ? AND size = ? AND color = ?", productID, size, color).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// UpdateQuantity sets a ledger row to an absolute quantity, recording who
// changed it.
func (s *Store) UpdateQuantity(id uint, quantity int, actorID *string) error {
	return s.db.Model(&models.Inventory{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_by": actorID,
		}).Error
}

// DefaultCurrency returns the store-configured currency, or "" when settings
// are missing or unreadable.
func (s *Store) DefaultCurrency() string {
	var settings models.Settings
	if err := s.db.First(&settings).Error; err != nil {
		return ""
	}
	return settings.Currency
}
