package server

import (
	"atelier/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Chat handles POST /api/chat (and the /api/smart_connect alias). The
// "generated" flag tells the client whether the reply came from the model
// or the canned fallback.
func (s *Server) Chat(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reply, generated, err := s.chatService.Reply(c.Context(), req.Message)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"reply":     reply,
		"generated": generated,
	})
}
