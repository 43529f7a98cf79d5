package models

import "time"

// Document is metadata for an uploaded file; the bytes live on disk under
// the configured upload directory and FilePath references them.
type Document struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	OriginalName string    `json:"original_name"`
	FilePath     string    `gorm:"not null" json:"file_path"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}
