package server

import (
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfile(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /api/profile. Absent fields are left
// untouched.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Name        *string `json:"name"`
		Headline    *string `json:"headline"`
		SubHeadline *string `json:"sub_headline"`
		ImageURL    *string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		Name:        req.Name,
		Headline:    req.Headline,
		SubHeadline: req.SubHeadline,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}
