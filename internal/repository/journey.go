package repository

import (
	"context"

	"atelier/internal/cache"
	"atelier/internal/models"

	"gorm.io/gorm"
)

// JourneyRepository defines the interface for journey-timeline data operations
type JourneyRepository interface {
	Create(ctx context.Context, entry *models.JourneyEntry) error
	GetByID(ctx context.Context, id uint) (*models.JourneyEntry, error)
	List(ctx context.Context) ([]*models.JourneyEntry, error)
	Update(ctx context.Context, entry *models.JourneyEntry) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type journeyRepository struct {
	db *gorm.DB
}

// NewJourneyRepository creates a new journey repository
func NewJourneyRepository(db *gorm.DB) JourneyRepository {
	return &journeyRepository{db: db}
}

func (r *journeyRepository) Create(ctx context.Context, entry *models.JourneyEntry) error {
	err := r.db.WithContext(ctx).Create(entry).Error
	if err == nil {
		cache.Invalidate(ctx, cache.JourneyListKey, cache.LandingKey)
	}
	return err
}

func (r *journeyRepository) GetByID(ctx context.Context, id uint) (*models.JourneyEntry, error) {
	var entry models.JourneyEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *journeyRepository) List(ctx context.Context) ([]*models.JourneyEntry, error) {
	var entries []*models.JourneyEntry
	err := r.db.WithContext(ctx).
		Order("year ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *journeyRepository) Update(ctx context.Context, entry *models.JourneyEntry) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.JourneyListKey, cache.LandingKey)
	return nil
}

func (r *journeyRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.JourneyEntry{}, id)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		cache.Invalidate(ctx, cache.JourneyListKey, cache.LandingKey)
	}
	return result.RowsAffected, nil
}
