// Package notify delivers marketplace events to the outside world by SMTP and
// HTTP webhook.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/gomail.v2"

	"github.com/spec-kit/gig-market/internal/config"
)

// Mailer sends a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Poster delivers a JSON document to a webhook.
type Poster interface {
	Post(ctx context.Context, payload any) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer returns nil when no SMTP host is configured.
func NewSMTPMailer(cfg config.NotificationConfig) *SMTPMailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.EmailFrom,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// Webhook posts JSON documents with the fiber client.
type Webhook struct {
	url     string
	timeout time.Duration
}

// NewWebhook returns nil when no URL is configured.
func NewWebhook(cfg config.NotificationConfig) *Webhook {
	if cfg.WebhookURL == "" {
		return nil
	}
	timeout := cfg.WebhookTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Webhook{url: cfg.WebhookURL, timeout: timeout}
}

func (w *Webhook) Post(ctx context.Context, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := w.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	agent := fiber.Post(w.url).
		Body(body).
		ContentType(fiber.MIMEApplicationJSON).
		Timeout(timeout)
	code, _, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("webhook post: %w", errs[0])
	}
	if code >= 300 {
		return fmt.Errorf("webhook post: unexpected status %d", code)
	}
	return nil
}
