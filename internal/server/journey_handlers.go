package server

import (
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

type journeyRequest struct {
	Year        int    `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GetJourney handles GET /api/journey, oldest entries first.
func (s *Server) GetJourney(c *fiber.Ctx) error {
	entries, err := s.journeyService.ListEntries(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entries)
}

// CreateJourneyEntry handles POST /api/journey
func (s *Server) CreateJourneyEntry(c *fiber.Ctx) error {
	var req journeyRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.journeyService.CreateEntry(c.Context(), service.JourneyInput{
		Year:        req.Year,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// UpdateJourneyEntry handles PUT /api/journey/:id
func (s *Server) UpdateJourneyEntry(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req journeyRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.journeyService.UpdateEntry(c.Context(), id, service.JourneyInput{
		Year:        req.Year,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entry)
}

// DeleteJourneyEntry handles DELETE /api/journey/:id
func (s *Server) DeleteJourneyEntry(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if _, err := s.journeyService.DeleteEntry(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
