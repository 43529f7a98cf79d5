package service

import (
	"context"
	"strings"

	"atelier/internal/models"
	"atelier/internal/repository"
)

const (
	minJourneyYear = 1900
	maxJourneyYear = 2100
)

type JourneyService struct {
	journeyRepo repository.JourneyRepository
}

type JourneyInput struct {
	Year        int
	Title       string
	Description string
}

func NewJourneyService(journeyRepo repository.JourneyRepository) *JourneyService {
	return &JourneyService{journeyRepo: journeyRepo}
}

func validateJourneyInput(in JourneyInput) error {
	if in.Year < minJourneyYear || in.Year > maxJourneyYear {
		return models.NewValidationError("Year must be between 1900 and 2100")
	}
	if strings.TrimSpace(in.Title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 200 characters)")
	}
	return nil
}

func (s *JourneyService) CreateEntry(ctx context.Context, in JourneyInput) (*models.JourneyEntry, error) {
	if err := validateJourneyInput(in); err != nil {
		return nil, err
	}
	entry := &models.JourneyEntry{
		Year:        in.Year,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
	}
	if err := s.journeyRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries returns the timeline ordered oldest first.
func (s *JourneyService) ListEntries(ctx context.Context) ([]*models.JourneyEntry, error) {
	return s.journeyRepo.List(ctx)
}

func (s *JourneyService) UpdateEntry(ctx context.Context, id uint, in JourneyInput) (*models.JourneyEntry, error) {
	if err := validateJourneyInput(in); err != nil {
		return nil, err
	}
	entry, err := s.journeyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.Year = in.Year
	entry.Title = strings.TrimSpace(in.Title)
	entry.Description = in.Description
	if err := s.journeyRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes a timeline item; unknown IDs are a no-op.
func (s *JourneyService) DeleteEntry(ctx context.Context, id uint) (int64, error) {
	return s.journeyRepo.Delete(ctx, id)
}
