package server

import (
	"atelier/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetBlockedUsers handles GET /api/admin/blocked-users
func (s *Server) GetBlockedUsers(c *fiber.Ctx) error {
	blocked, err := s.moderationService.ListBlocked(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(blocked)
}

// BlockUser handles POST /api/admin/blocked-users. Blocking a name twice
// returns the existing entry.
func (s *Server) BlockUser(c *fiber.Ctx) error {
	var req struct {
		Name   string `json:"name"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.moderationService.BlockName(c.Context(), req.Name, req.Reason)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// UnblockUser handles DELETE /api/admin/blocked-users/:id
func (s *Server) UnblockUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if _, err := s.moderationService.UnblockName(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
