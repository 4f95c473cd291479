package models

import "time"

// Inventory is the per (product, size, color) quantity ledger. It is
// decremented by the status engine when an order first reaches "delivered",
// independently of the Product stock reserved at order-creation time.
type Inventory struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"index:idx_inventory_key,unique;not null" json:"product_id"`
	Size      string    `gorm:"index:idx_inventory_key,unique" json:"size"`
	Color     string    `gorm:"index:idx_inventory_key,unique" json:"color"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	UpdatedBy *string   `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
