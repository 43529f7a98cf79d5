package repository

import (
	"context"

	"atelier/internal/cache"
	"atelier/internal/models"

	"gorm.io/gorm"
)

// DocumentRepository defines the interface for document metadata operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uint) (*models.Document, error)
	List(ctx context.Context) ([]*models.Document, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	err := r.db.WithContext(ctx).Create(doc).Error
	if err == nil {
		cache.Invalidate(ctx, cache.DocumentListKey, cache.LandingKey)
	}
	return err
}

func (r *documentRepository) GetByID(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context) ([]*models.Document, error) {
	var docs []*models.Document
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Document{}, id)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		cache.Invalidate(ctx, cache.DocumentListKey, cache.LandingKey)
	}
	return result.RowsAffected, nil
}
