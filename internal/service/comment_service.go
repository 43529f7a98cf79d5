package service

import (
	"context"
	"strings"

	"atelier/internal/models"
	"atelier/internal/repository"
	"atelier/internal/validation"
)

const maxCommentLen = 5000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	blocklist   repository.BlocklistRepository
}

type AddCommentInput struct {
	PostID     uint
	AuthorName string
	Content    string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	blocklist repository.BlocklistRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		blocklist:   blocklist,
	}
}

// AddComment stores a visitor comment after checking the author against the
// block list. Blocked names are rejected before anything is written.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if err := validation.ValidateDisplayName(in.AuthorName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 5000 characters)")
	}

	blocked, err := s.blocklist.IsBlocked(ctx, in.AuthorName)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, models.NewForbiddenError("You are not allowed to comment")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.AuthorName)
	comment := &models.Comment{
		PostID:        in.PostID,
		AuthorName:    name,
		AuthorInitial: validation.NameInitial(name),
		Content:       content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// DeleteComment removes a comment; unknown IDs are a no-op.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) (int64, error) {
	return s.commentRepo.Delete(ctx, id)
}
