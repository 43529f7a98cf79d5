package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a portfolio content card shown on the landing page.
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"index;default:general" json:"category"`
	ImageURL    string `json:"image_url"`
	// LikeCount is persisted and incremented atomically; repeated likes from
	// the same visitor each count.
	LikeCount int `gorm:"not null;default:0" json:"like_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
