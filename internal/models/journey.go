package models

import "time"

// JourneyEntry is a timeline item on the landing page.
type JourneyEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Year        int       `gorm:"not null;index" json:"year"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
