package server

import (
	"atelier/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Follow handles POST /api/follow. Following twice with the same email is
// idempotent and still reports success.
func (s *Server) Follow(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.followService.Follow(c.Context(), req.Name, req.Email)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"created": created,
	})
}

// GetSubscribers handles GET /api/admin/subscribers
func (s *Server) GetSubscribers(c *fiber.Ctx) error {
	subscribers, err := s.followService.ListSubscribers(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(subscribers)
}
