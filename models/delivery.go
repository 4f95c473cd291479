package models

import "time"

// DeliveryCompany is an external shipping provider an order can be handed to.
// FieldMappings is a JSON object mapping order fields to the provider's API
// field names.
type DeliveryCompany struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"unique;not null" json:"name"`
	APIBaseURL    string    `json:"api_base_url"`
	APIKey        string    `json:"-"`
	FieldMappings string    `gorm:"type:text" json:"field_mappings"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
