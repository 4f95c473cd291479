package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omrannajeeb/leohol/models"
	"github.com/omrannajeeb/leohol/services/orders"
)

// Begin opens a unit of work for order assembly. When the engine cannot
// start a transaction the work degrades to sequential mode: writes apply
// immediately, are visible to concurrent requests, and are not rolled back
// if a later step fails.
func (s *Store) Begin(ctx context.Context) orders.Work {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Warn("transaction start failed, degrading to sequential writes",
			zap.Error(tx.Error))
		return &work{handle: s.db.WithContext(ctx)}
	}
	return &work{handle: tx, transactional: true}
}

type work struct {
	handle        *gorm.DB
	transactional bool
	done          bool
}

func (w *work) Products() orders.ProductStore     { return &productStore{w} }
func (w *work) Orders() orders.OrderStore         { return &orderStore{w} }
func (w *work) Recipients() orders.RecipientStore { return &recipientStore{w} }

func (w *work) Transactional() bool { return w.transactional }

func (w *work) Commit() error {
	if !w.transactional {
		return nil
	}
	w.done = true
	return w.handle.Commit().Error
}

func (w *work) Rollback() {
	if !w.transactional || w.done {
		return
	}
	w.done = true
	w.handle.Rollback()
}

type productStore struct {
	w *work
}

func (ps *productStore) FindForUpdate(id uint) (*models.Product, error) {
	var product models.Product
	handle := ps.w.handle
	if ps.w.transactional {
		handle = handle.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := handle.Preload("Sizes").Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (ps *productStore) Save(p *models.Product) error {
	// Variants are persisted explicitly; Save does not cascade to loaded
	// associations, and the BeforeSave hook needs the decremented values in
	// place to recompute the aggregate.
	for i := range p.Sizes {
		if err := ps.w.handle.Save(&p.Sizes[i]).Error; err != nil {
			return fmt.Errorf("save size variant %q: %w", p.Sizes[i].Name, err)
		}
	}
	return ps.w.handle.Omit("Sizes", "Images", "Reviews", "Category").Save(p).Error
}

type orderStore struct {
	w *work
}

func (os *orderStore) Create(o *models.Order) error {
	handle := os.w.handle
	// A failed insert poisons an open transaction, so the number-collision
	// retry needs a savepoint to fall back to.
	if os.w.transactional {
		if err := handle.SavePoint("create_order").Error; err != nil {
			return err
		}
	}
	err := handle.Create(o).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		if os.w.transactional {
			if rbErr := handle.RollbackTo("create_order").Error; rbErr != nil {
				return rbErr
			}
		}
		return fmt.Errorf("%w: %s", orders.ErrOrderNumberConflict, o.OrderNumber)
	}
	return err
}

type recipientStore struct {
	w *work
}

func (rs *recipientStore) Upsert(r *models.Recipient) error {
	return rs.w.handle.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}, {Name: "mobile"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"first_name", "last_name", "secondary_mobile", "street", "city", "country", "updated_at",
		}),
	}).Create(r).Error
}
