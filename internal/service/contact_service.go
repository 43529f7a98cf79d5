package service

import (
	"context"
	"fmt"
	"strings"

	"atelier/internal/mailer"
	"atelier/internal/models"
	"atelier/internal/repository"
	"atelier/internal/validation"
)

const maxContactMessageLen = 10000

type ContactService struct {
	contactRepo repository.ContactRepository
	dispatcher  *mailer.Dispatcher
	notifyTo    string
}

type SubmitContactInput struct {
	Name    string
	Email   string
	Message string
}

func NewContactService(contactRepo repository.ContactRepository, dispatcher *mailer.Dispatcher, notifyTo string) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		dispatcher:  dispatcher,
		notifyTo:    notifyTo,
	}
}

// Submit persists the message and then queues a notification email. The
// caller's success does not depend on the mail outcome; the row is the
// source of truth.
func (s *ContactService) Submit(ctx context.Context, in SubmitContactInput) (*models.ContactMessage, error) {
	if err := validation.ValidateDisplayName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	body := strings.TrimSpace(in.Message)
	if body == "" {
		return nil, models.NewValidationError("Message is required")
	}
	if len(body) > maxContactMessageLen {
		return nil, models.NewValidationError("Message too long (max 10000 characters)")
	}

	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: body,
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.notifyTo != "" {
		s.dispatcher.Enqueue(mailer.Message{
			To:      s.notifyTo,
			Subject: "New Contact Form Submission",
			Body:    fmt.Sprintf("Name: %s\nEmail: %s\nMessage:\n%s", msg.Name, msg.Email, msg.Message),
		})
	}
	return msg, nil
}

func (s *ContactService) ListMessages(ctx context.Context, limit, offset int) ([]*models.ContactMessage, error) {
	return s.contactRepo.List(ctx, limit, offset)
}

// Reply queues a reply email to the original sender and marks the message
// replied. The timestamp records when the reply was queued, not delivered.
func (s *ContactService) Reply(ctx context.Context, id uint, body string) (*models.ContactMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, models.NewValidationError("Reply body is required")
	}

	msg, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.dispatcher.Enqueue(mailer.Message{
		To:      msg.Email,
		Subject: "Re: your message",
		Body:    body,
	})
	if err := s.contactRepo.MarkReplied(ctx, id); err != nil {
		return nil, err
	}
	return s.contactRepo.GetByID(ctx, id)
}
