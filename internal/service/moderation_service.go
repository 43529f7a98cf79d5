package service

import (
	"context"

	"atelier/internal/models"
	"atelier/internal/repository"
	"atelier/internal/validation"
)

type ModerationService struct {
	blocklist repository.BlocklistRepository
}

func NewModerationService(blocklist repository.BlocklistRepository) *ModerationService {
	return &ModerationService{blocklist: blocklist}
}

// BlockName adds a display name to the block list. Blocking an already
// blocked name returns the existing entry.
func (s *ModerationService) BlockName(ctx context.Context, name, reason string) (*models.BlockedUser, error) {
	if err := validation.ValidateDisplayName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.blocklist.Block(ctx, name, reason)
}

// UnblockName removes a block-list entry; unknown IDs are a no-op.
func (s *ModerationService) UnblockName(ctx context.Context, id uint) (int64, error) {
	return s.blocklist.Unblock(ctx, id)
}

func (s *ModerationService) ListBlocked(ctx context.Context) ([]*models.BlockedUser, error) {
	return s.blocklist.List(ctx)
}
