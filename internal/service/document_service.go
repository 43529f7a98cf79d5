package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"atelier/internal/middleware"
	"atelier/internal/models"
	"atelier/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxDocumentSize = 25 << 20 // 25 MiB

type DocumentService struct {
	documentRepo repository.DocumentRepository
	uploadDir    string
}

func NewDocumentService(documentRepo repository.DocumentRepository, uploadDir string) *DocumentService {
	return &DocumentService{documentRepo: documentRepo, uploadDir: uploadDir}
}

// Upload streams the file to disk under a random name and records its
// metadata. The stored filename never derives from user input.
func (s *DocumentService) Upload(ctx context.Context, title string, fh *multipart.FileHeader) (*models.Document, error) {
	if strings.TrimSpace(title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if fh == nil || fh.Size == 0 {
		return nil, models.NewValidationError("File is required")
	}
	if fh.Size > maxDocumentSize {
		return nil, models.NewValidationError("File too large (max 25 MB)")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, models.NewInternalError(fmt.Errorf("open upload: %w", err))
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	target := filepath.Join(s.uploadDir, name)

	dst, err := os.Create(target)
	if err != nil {
		return nil, models.NewInternalError(fmt.Errorf("create file: %w", err))
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(target)
		return nil, models.NewInternalError(fmt.Errorf("write file: %w", err))
	}
	if err := dst.Close(); err != nil {
		os.Remove(target)
		return nil, models.NewInternalError(fmt.Errorf("close file: %w", err))
	}

	doc := &models.Document{
		Title:        strings.TrimSpace(title),
		OriginalName: filepath.Base(fh.Filename),
		FilePath:     name,
		ContentType:  fh.Header.Get("Content-Type"),
		SizeBytes:    fh.Size,
	}
	if err := s.documentRepo.Create(ctx, doc); err != nil {
		os.Remove(target)
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	return s.documentRepo.List(ctx)
}

// ResolvePath returns the document row and the on-disk path of its file,
// refusing anything that would escape the upload directory.
func (s *DocumentService) ResolvePath(ctx context.Context, id uint) (*models.Document, string, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	path := filepath.Join(s.uploadDir, filepath.Clean("/"+doc.FilePath))
	if !strings.HasPrefix(path, filepath.Clean(s.uploadDir)+string(os.PathSeparator)) {
		return nil, "", models.NewNotFoundError("Document", id)
	}
	return doc, path, nil
}

// DeleteDocument removes the row and best-effort removes the file. A missing
// row is a no-op; a missing file is only logged.
func (s *DocumentService) DeleteDocument(ctx context.Context, id uint) (int64, error) {
	doc, _, err := s.ResolvePath(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	deleted, err := s.documentRepo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		path := filepath.Join(s.uploadDir, doc.FilePath)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			middleware.Logger.Warn("failed to remove document file",
				"path", path, "error", err)
		}
	}
	return deleted, nil
}
