package models

import "time"

// Subscriber is a follow-form signup. Email is unique; a repeated follow
// with the same address is treated as success without a second row.
type Subscriber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
