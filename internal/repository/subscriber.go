package repository

import (
	"context"
	"errors"
	"strings"

	"atelier/internal/models"

	"gorm.io/gorm"
)

// SubscriberRepository defines the interface for follower/subscriber data operations
type SubscriberRepository interface {
	// Upsert stores the subscriber unless the email is already registered.
	// Returns true when a new row was created.
	Upsert(ctx context.Context, name, email string) (bool, error)
	List(ctx context.Context) ([]*models.Subscriber, error)
	Count(ctx context.Context) (int64, error)
}

type subscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Upsert(ctx context.Context, name, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.Subscriber
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	sub := models.Subscriber{Name: strings.TrimSpace(name), Email: email}
	if err := r.db.WithContext(ctx).Create(&sub).Error; err != nil {
		// A concurrent follow can win the race; the unique index makes the
		// second insert fail, which still means "subscribed".
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *subscriberRepository) List(ctx context.Context) ([]*models.Subscriber, error) {
	var subs []*models.Subscriber
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *subscriberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscriber{}).Count(&count).Error
	return count, err
}
