package models

import "time"

// Comment represents a visitor comment on a post. Authorship is a
// self-reported display name; there is no account behind it.
type Comment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PostID        uint      `gorm:"not null;index" json:"post_id"`
	Post          *Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
	AuthorName    string    `gorm:"not null" json:"author_name"`
	AuthorInitial string    `gorm:"size:1" json:"author_initial"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}
