package models

import "time"

// ContactMessage is a contact-form submission. The row is persisted before
// any notification email is attempted, so the inbox never loses a message
// to a mail outage.
type ContactMessage struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Email     string     `gorm:"not null" json:"email"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	RepliedAt *time.Time `json:"replied_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
