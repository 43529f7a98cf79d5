// Package mailer sends notification emails over SMTP and queues them off the
// request path. Delivery is best effort: the HTTP caller never waits on or
// learns about the mail outcome, which is instead logged and counted.
package mailer

import (
	"context"
	"fmt"

	"atelier/internal/config"

	"github.com/wneessen/go-mail"
)

// Message is a plain-text notification email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message. Implementations must be safe for use
// from the dispatcher goroutine.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type smtpSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPSender builds an SMTP sender from config, or nil when no SMTP host
// is configured (the dispatcher then logs and drops everything).
func NewSMTPSender(cfg *config.Config) Sender {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &smtpSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
	}
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	client, err := mail.NewClient(s.host,
		mail.WithPort(s.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.username),
		mail.WithPassword(s.password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
