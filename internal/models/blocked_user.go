package models

import "time"

// BlockedUser bars a display name from commenting and liking. Names are
// stored trimmed and lowercased so the match is case-insensitive.
type BlockedUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
