package models

import "time"

// PushSubscription is one browser push endpoint. Dead endpoints (404/410 from
// the push service) are pruned on broadcast.
type PushSubscription struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *string   `gorm:"index" json:"user_id,omitempty"`
	Endpoint  string    `gorm:"uniqueIndex;not null" json:"endpoint"`
	P256dh    string    `gorm:"not null" json:"p256dh"`
	Auth      string    `gorm:"not null" json:"auth"`
	CreatedAt time.Time `json:"created_at"`
}
