// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"atelier/internal/cache"
	"atelier/internal/models"

	"gorm.io/gorm"
)

// profileID is the primary key of the singleton profile row.
const profileID = 1

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	Get(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	EnsureDefault(ctx context.Context, def models.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	profile.ID = profileID
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return err
	}
	cache.InvalidateLanding(ctx)
	return nil
}

// EnsureDefault seeds the singleton row on first boot and is a no-op afterwards.
func (r *profileRepository) EnsureDefault(ctx context.Context, def models.Profile) error {
	var existing models.Profile
	err := r.db.WithContext(ctx).First(&existing, profileID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	def.ID = profileID
	return r.db.WithContext(ctx).Create(&def).Error
}
