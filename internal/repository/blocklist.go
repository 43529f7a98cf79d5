package repository

import (
	"context"
	"errors"

	"atelier/internal/models"
	"atelier/internal/validation"

	"gorm.io/gorm"
)

// BlocklistRepository defines the interface for blocked-name operations.
// Matching is a normalized display-name comparison, which is the contract
// the interaction endpoints enforce.
type BlocklistRepository interface {
	IsBlocked(ctx context.Context, name string) (bool, error)
	Block(ctx context.Context, name, reason string) (*models.BlockedUser, error)
	Unblock(ctx context.Context, id uint) (int64, error)
	List(ctx context.Context) ([]*models.BlockedUser, error)
}

type blocklistRepository struct {
	db *gorm.DB
}

// NewBlocklistRepository creates a new blocklist repository
func NewBlocklistRepository(db *gorm.DB) BlocklistRepository {
	return &blocklistRepository{db: db}
}

func (r *blocklistRepository) IsBlocked(ctx context.Context, name string) (bool, error) {
	normalized := validation.NormalizeName(name)
	if normalized == "" {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BlockedUser{}).
		Where("name = ?", normalized).
		Count(&count).Error
	return count > 0, err
}

func (r *blocklistRepository) Block(ctx context.Context, name, reason string) (*models.BlockedUser, error) {
	entry := models.BlockedUser{
		Name:   validation.NormalizeName(name),
		Reason: reason,
	}

	var existing models.BlockedUser
	err := r.db.WithContext(ctx).Where("name = ?", entry.Name).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *blocklistRepository) Unblock(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.BlockedUser{}, id)
	return result.RowsAffected, result.Error
}

func (r *blocklistRepository) List(ctx context.Context) ([]*models.BlockedUser, error) {
	var entries []*models.BlockedUser
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
