package service

import (
	"context"
	"strings"

	"atelier/internal/assistant"
	"atelier/internal/middleware"
	"atelier/internal/models"
	"atelier/internal/observability"
)

const maxPromptLen = 2000

type ChatService struct {
	client *assistant.Client
}

// NewChatService accepts a nil client; every reply is then canned.
func NewChatService(client *assistant.Client) *ChatService {
	return &ChatService{client: client}
}

// Reply answers a visitor prompt. The second return value reports whether
// the reply came from the model (true) or the canned fallback (false).
func (s *ChatService) Reply(ctx context.Context, prompt string) (string, bool, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", false, models.NewValidationError("Message is required")
	}
	if len(prompt) > maxPromptLen {
		return "", false, models.NewValidationError("Message too long (max 2000 characters)")
	}

	if s.client != nil {
		reply, err := s.client.Generate(ctx, prompt)
		if err == nil {
			observability.AssistantReplies.WithLabelValues("model").Inc()
			return reply, true, nil
		}
		middleware.Logger.Warn("assistant upstream failed, using canned reply", "error", err)
	}

	observability.AssistantReplies.WithLabelValues("canned").Inc()
	return assistant.CannedReply(prompt), false, nil
}
