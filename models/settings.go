package models

import "time"

// Settings is the single-row store configuration. Order creation reads the
// default currency from here; everything else is admin-facing appearance and
// contact data.
type Settings struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null;default:'Eva Curves Fashion Store'" json:"name"`
	Email    string `gorm:"not null;default:'contact@evacurves.com'" json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Currency string `gorm:"type:VARCHAR(3);not null;default:'USD'" json:"currency"`
	Timezone string `gorm:"default:'UTC'" json:"timezone"`
	Logo     string `json:"logo"`

	// Theme
	PrimaryColor    string `gorm:"default:'#3b82f6'" json:"primary_color"`
	SecondaryColor  string `gorm:"default:'#64748b'" json:"secondary_color"`
	AccentColor     string `gorm:"default:'#f59e0b'" json:"accent_color"`
	TextColor       string `gorm:"default:'#1f2937'" json:"text_color"`
	BackgroundColor string `gorm:"default:'#ffffff'" json:"background_color"`

	MaintenanceMode bool      `json:"maintenance_mode"`
	UpdatedAt       time.Time `json:"updated_at"`
}
