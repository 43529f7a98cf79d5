// Package service holds the business rules between the HTTP handlers and the
// repositories. Services validate input, enforce the block list, and return
// typed AppErrors the handlers translate to HTTP responses.
package service

import (
	"context"
	"strings"

	"atelier/internal/models"
	"atelier/internal/repository"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 20000
)

type PostService struct {
	postRepo  repository.PostRepository
	blocklist repository.BlocklistRepository
}

type CreatePostInput struct {
	Title       string
	Description string
	Category    string
	ImageURL    string
}

type UpdatePostInput struct {
	PostID      uint
	Title       *string
	Description *string
	Category    *string
	ImageURL    *string
}

func NewPostService(
	postRepo repository.PostRepository,
	blocklist repository.BlocklistRepository,
) *PostService {
	return &PostService{postRepo: postRepo, blocklist: blocklist}
}

func validatePostFields(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 200 characters)")
	}
	if strings.TrimSpace(description) == "" {
		return models.NewValidationError("Description is required")
	}
	if len(description) > maxDescriptionLen {
		return models.NewValidationError("Description too long (max 20000 characters)")
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Description); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
	if post.Category == "" {
		post.Category = "general"
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, category string, limit, offset int) ([]*models.Post, error) {
	category = strings.TrimSpace(category)
	if category != "" {
		return s.postRepo.ListByCategory(ctx, category, limit, offset)
	}
	return s.postRepo.List(ctx, limit, offset)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		post.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		post.Description = *in.Description
	}
	if in.Category != nil {
		post.Category = strings.TrimSpace(*in.Category)
	}
	if in.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if err := validatePostFields(post.Title, post.Description); err != nil {
		return nil, err
	}
	if post.Category == "" {
		post.Category = "general"
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, in.PostID)
}

// DeletePost removes a post. Deleting an unknown ID is a no-op, not an
// error; the returned count tells callers whether a row went away.
func (s *PostService) DeletePost(ctx context.Context, id uint) (int64, error) {
	return s.postRepo.Delete(ctx, id)
}

// LikePost bumps the like counter and returns the new value. There is no
// per-visitor dedupe; every call counts. A display name, when supplied, is
// checked against the block list before the counter moves.
func (s *PostService) LikePost(ctx context.Context, id uint, name string) (int, error) {
	if name = strings.TrimSpace(name); name != "" {
		blocked, err := s.blocklist.IsBlocked(ctx, name)
		if err != nil {
			return 0, err
		}
		if blocked {
			return 0, models.NewForbiddenError("You are not allowed to like posts")
		}
	}
	return s.postRepo.IncrementLikeCount(ctx, id)
}
