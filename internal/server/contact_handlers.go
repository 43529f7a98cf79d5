package server

import (
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitContact handles POST /api/contact. The message row is the source of
// truth; notification mail is queued and never blocks the response.
func (s *Server) SubmitContact(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if _, err := s.contactService.Submit(c.Context(), service.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetMessages handles GET /api/admin/messages
func (s *Server) GetMessages(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	messages, err := s.contactService.ListMessages(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(messages)
}

// ReplyMessage handles POST /api/admin/messages/:id/reply
func (s *Server) ReplyMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.contactService.Reply(c.Context(), id, req.Body)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(msg)
}
