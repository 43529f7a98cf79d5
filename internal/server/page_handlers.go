package server

import (
	"atelier/internal/cache"
	"atelier/internal/models"

	"github.com/gofiber/fiber/v2"
)

// landingPayload is everything the landing page needs in one response.
type landingPayload struct {
	Profile     *models.Profile        `json:"profile"`
	Posts       []*models.Post         `json:"posts"`
	Journey     []*models.JourneyEntry `json:"journey"`
	Documents   []*models.Document     `json:"documents"`
	Subscribers int64                  `json:"subscribers"`
}

// Home handles GET /. The payload is cached briefly since every visitor
// hits this first.
func (s *Server) Home(c *fiber.Ctx) error {
	var payload landingPayload
	err := cache.Aside(c.Context(), cache.LandingKey, &payload, cache.LandingTTL, func() error {
		profile, err := s.profileService.GetProfile(c.Context())
		if err != nil {
			return err
		}
		posts, err := s.postService.ListPosts(c.Context(), "", 50, 0)
		if err != nil {
			return err
		}
		journey, err := s.journeyService.ListEntries(c.Context())
		if err != nil {
			return err
		}
		documents, err := s.documentService.ListDocuments(c.Context())
		if err != nil {
			return err
		}
		subscribers, err := s.followService.CountSubscribers(c.Context())
		if err != nil {
			return err
		}
		payload = landingPayload{
			Profile:     profile,
			Posts:       posts,
			Journey:     journey,
			Documents:   documents,
			Subscribers: subscribers,
		}
		return nil
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(payload)
}

// Dashboard handles GET /dashboard. Without a valid admin session the
// visitor is bounced to the home page rather than shown an error.
func (s *Server) Dashboard(c *fiber.Ctx) error {
	if !s.hasAdminSession(c) {
		return c.Redirect("/", fiber.StatusFound)
	}

	messages, err := s.contactService.ListMessages(c.Context(), 50, 0)
	if err != nil {
		return respondServiceError(c, err)
	}
	subscribers, err := s.followService.CountSubscribers(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	blocked, err := s.moderationService.ListBlocked(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"messages":      messages,
		"subscribers":   subscribers,
		"blocked_users": blocked,
	})
}
