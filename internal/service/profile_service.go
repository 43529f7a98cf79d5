package service

import (
	"context"
	"strings"

	"atelier/internal/models"
	"atelier/internal/repository"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

type UpdateProfileInput struct {
	Name        *string
	Headline    *string
	SubHeadline *string
	ImageURL    *string
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) GetProfile(ctx context.Context) (*models.Profile, error) {
	return s.profileRepo.Get(ctx)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Name cannot be empty")
		}
		profile.Name = name
	}
	if in.Headline != nil {
		profile.Headline = *in.Headline
	}
	if in.SubHeadline != nil {
		profile.SubHeadline = *in.SubHeadline
	}
	if in.ImageURL != nil {
		profile.ImageURL = strings.TrimSpace(*in.ImageURL)
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
