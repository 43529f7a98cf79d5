package models

import "time"

// Profile is the site owner's singleton profile row, seeded at bootstrap.
// There is exactly one row with ID 1.
type Profile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Headline    string    `gorm:"type:text" json:"headline"`
	SubHeadline string    `gorm:"type:text" json:"sub_headline"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
