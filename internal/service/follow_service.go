package service

import (
	"context"

	"atelier/internal/models"
	"atelier/internal/repository"
	"atelier/internal/validation"
)

type FollowService struct {
	subscriberRepo repository.SubscriberRepository
}

func NewFollowService(subscriberRepo repository.SubscriberRepository) *FollowService {
	return &FollowService{subscriberRepo: subscriberRepo}
}

// Follow registers a subscriber. Following twice with the same email is
// still a success; no second row is created.
func (s *FollowService) Follow(ctx context.Context, name, email string) (bool, error) {
	if err := validation.ValidateDisplayName(name); err != nil {
		return false, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return false, models.NewValidationError(err.Error())
	}
	return s.subscriberRepo.Upsert(ctx, name, email)
}

func (s *FollowService) ListSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	return s.subscriberRepo.List(ctx)
}

func (s *FollowService) CountSubscribers(ctx context.Context) (int64, error) {
	return s.subscriberRepo.Count(ctx)
}
