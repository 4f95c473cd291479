package models

import (
	"strings"
	"time"
)

// ShippingZone groups destination countries for rate lookup. Countries is a
// comma-separated list of ISO codes.
type ShippingZone struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Countries string         `gorm:"not null" json:"countries"`
	Rates     []ShippingRate `gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE" json:"rates"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// MatchesCountry reports whether the zone covers the given ISO country code.
func (z *ShippingZone) MatchesCountry(code string) bool {
	for _, c := range strings.Split(z.Countries, ",") {
		if strings.TrimSpace(c) == code {
			return true
		}
	}
	return false
}

// ShippingRate is one shipping method offered inside a zone. Max bounds of 0
// mean unbounded.
type ShippingRate struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ZoneID      uint    `gorm:"index;not null" json:"zone_id"`
	Name        string  `gorm:"not null" json:"name"`
	Method      string  `gorm:"not null" json:"method"` // e.g. "standard", "express"
	BaseCost    float64 `gorm:"not null" json:"base_cost"`
	PerKgCost   float64 `json:"per_kg_cost"`
	MinSubtotal float64 `json:"min_subtotal"`
	MaxSubtotal float64 `json:"max_subtotal"`
	MinWeight   float64 `json:"min_weight"`
	MaxWeight   float64 `json:"max_weight"`

	CreatedAt time.Time `json:"created_at"`
}

// Cost returns the shipping cost for the given order, or false when the rate
// does not apply to it.
func (r *ShippingRate) Cost(subtotal, weight float64) (float64, bool) {
	if subtotal < r.MinSubtotal || (r.MaxSubtotal > 0 && subtotal > r.MaxSubtotal) {
		return 0, false
	}
	if weight < r.MinWeight || (r.MaxWeight > 0 && weight > r.MaxWeight) {
		return 0, false
	}
	return r.BaseCost + r.PerKgCost*weight, true
}
