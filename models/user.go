package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `json:"-"` // bcrypt hash; empty for google accounts
	Role      string    `gorm:"type:VARCHAR(10);default:'user'" json:"role"`
	Provider  string    `json:"provider"` // "local" or "google"
	Picture   string    `json:"picture,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RefreshToken is the server-side half of the access/refresh pair. Tokens are
// rotated on every refresh and removed on logout.
type RefreshToken struct {
	Token     string    `gorm:"primaryKey" json:"token"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
