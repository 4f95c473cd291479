package models

import "time"

// Recipient is a denormalized customer profile keyed by (email, mobile).
// Order creation upserts it with last-write-wins semantics; orders never
// reference it.
type Recipient struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `gorm:"index:idx_recipient_key,unique;not null" json:"email"`
	Mobile          string    `gorm:"index:idx_recipient_key,unique;not null" json:"mobile"`
	SecondaryMobile string    `json:"secondary_mobile,omitempty"`
	Street          string    `json:"street"`
	City            string    `json:"city"`
	Country         string    `json:"country"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
