package server

import (
	"atelier/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDocuments handles GET /api/documents
func (s *Server) GetDocuments(c *fiber.Ctx) error {
	docs, err := s.documentService.ListDocuments(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(docs)
}

// DownloadDocument handles GET /api/documents/:id/download, serving the
// stored file under its original name.
func (s *Server) DownloadDocument(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	doc, path, err := s.documentService.ResolvePath(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	if doc.ContentType != "" {
		c.Set(fiber.HeaderContentType, doc.ContentType)
	}
	return c.Download(path, doc.OriginalName)
}

// UploadDocument handles POST /api/documents (multipart: title + file).
func (s *Server) UploadDocument(c *fiber.Ctx) error {
	title := c.FormValue("title")
	fh, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("File is required"))
	}

	doc, err := s.documentService.Upload(c.Context(), title, fh)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// DeleteDocument handles DELETE /api/documents/:id
func (s *Server) DeleteDocument(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if _, err := s.documentService.DeleteDocument(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
