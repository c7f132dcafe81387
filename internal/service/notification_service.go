package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/gig-market/internal/config"
	"github.com/spec-kit/gig-market/internal/domain"
	"github.com/spec-kit/gig-market/internal/events"
	"github.com/spec-kit/gig-market/internal/notify"
	"github.com/spec-kit/gig-market/internal/observability"
	"github.com/spec-kit/gig-market/internal/repository"
)

// NotificationService reacts to domain events: it delivers the counterpart copy
// of chat messages, mails moderation and payment notices and forwards events to
// the configured webhook.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailboxes  *repository.Mailboxes
	metrics    *observability.Metrics
	logger     *zap.Logger
	cfg        config.NotificationConfig
	mailer     notify.Mailer
	webhook    notify.Poster
}

// NewNotificationService creates the service. metrics may be nil.
func NewNotificationService(dispatcher events.Dispatcher, mailboxes *repository.Mailboxes, metrics *observability.Metrics, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &NotificationService{
		dispatcher: dispatcher,
		mailboxes:  mailboxes,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg,
	}
	if m := notify.NewSMTPMailer(cfg); m != nil {
		n.mailer = m
	}
	if w := notify.NewWebhook(cfg); w != nil {
		n.webhook = w
	}
	return n
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventJobCreated, n.handleJobCreated)
	n.dispatcher.Subscribe(events.EventJobApplied, n.handleJobApplied)
	n.dispatcher.Subscribe(events.EventJobStatusChanged, n.handleJobStatusChanged)
	n.dispatcher.Subscribe(events.EventMessageSent, n.handleMessageSent)
	n.dispatcher.Subscribe(events.EventPaymentSent, n.handleMessageSent)
	n.dispatcher.Subscribe(events.EventConversationReported, n.handleReported)
	n.dispatcher.Subscribe(events.EventCommentReported, n.handleReported)
}

func (n *NotificationService) handleJobCreated(ctx context.Context, event events.Event) error {
	n.record(event)
	return n.postWebhook(ctx, event)
}

func (n *NotificationService) handleJobApplied(ctx context.Context, event events.Event) error {
	n.record(event)
	payload, ok := event.Payload.(events.JobAppliedPayload)
	if !ok {
		return nil
	}
	n.deliver(payload.EmployerID, event.Actor, payload.Message)
	return n.postWebhook(ctx, event)
}

func (n *NotificationService) handleJobStatusChanged(ctx context.Context, event events.Event) error {
	n.record(event)
	return n.postWebhook(ctx, event)
}

func (n *NotificationService) handleMessageSent(ctx context.Context, event events.Event) error {
	n.record(event)
	payload, ok := event.Payload.(events.MessageSentPayload)
	if !ok {
		return nil
	}
	n.deliver(payload.RecipientID, event.Actor, payload.Message)
	if event.Type != events.EventPaymentSent || payload.Message.PaymentAmount == nil {
		return nil
	}
	subject := "Ödəniş göndərildi " + payload.Message.ReceiptNumber
	body := fmt.Sprintf("%s %.2f ₼ göndərdi (qəbz %s).", event.Actor.Name, *payload.Message.PaymentAmount, payload.Message.ReceiptNumber)
	return n.notifyModeration(ctx, event, subject, body)
}

func (n *NotificationService) handleReported(ctx context.Context, event events.Event) error {
	n.record(event)
	var subject, reason string
	switch payload := event.Payload.(type) {
	case events.ConversationReportedPayload:
		subject, reason = "Söhbət şikayəti "+payload.ConversationID, payload.Reason
	case events.CommentReportedPayload:
		subject, reason = "Şərh şikayəti "+payload.CommentID, payload.Reason
	default:
		return nil
	}
	body := fmt.Sprintf("%s (%s) şikayət etdi: %s", event.Actor.Name, event.Actor.UserID, reason)
	return n.notifyModeration(ctx, event, subject, body)
}

// notifyModeration mails the moderation inbox and posts the event to the
// webhook. A failing channel does not keep the other one from running.
func (n *NotificationService) notifyModeration(ctx context.Context, event events.Event, subject, body string) error {
	return errors.Join(n.sendEmail(ctx, subject, body), n.postWebhook(ctx, event))
}

// deliver copies msg into the recipient's mailbox as written by the actor.
func (n *NotificationService) deliver(recipientID string, actor events.Actor, msg domain.Message) {
	if n.mailboxes == nil || recipientID == "" || recipientID == actor.UserID {
		return
	}
	conv := n.mailboxes.For(recipientID).Receive(actor.UserID, actor.Name, msg)
	n.logger.Debug("message delivered",
		zap.String("recipient_id", recipientID),
		zap.String("conversation_id", conv.ID),
		zap.Int("unread", conv.Unread))
}

func (n *NotificationService) record(event events.Event) {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("actor_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	n.metrics.RecordEvent(string(event.Type))
}

// sendEmail mails the moderation inbox. It is a no-op without SMTP settings.
func (n *NotificationService) sendEmail(ctx context.Context, subject, body string) error {
	if n.mailer == nil || strings.TrimSpace(n.cfg.ModerationTo) == "" {
		return nil
	}
	if err := n.mailer.Send(ctx, n.cfg.ModerationTo, subject, body); err != nil {
		n.metrics.RecordEvent("notify_email_failed")
		return err
	}
	n.logger.Debug("email sent", zap.String("to", n.cfg.ModerationTo), zap.String("subject", subject))
	return nil
}

func (n *NotificationService) postWebhook(ctx context.Context, event events.Event) error {
	if n.webhook == nil {
		return nil
	}
	if err := n.webhook.Post(ctx, event); err != nil {
		n.metrics.RecordEvent("notify_webhook_failed")
		return err
	}
	n.logger.Debug("webhook delivered", zap.String("event_id", event.ID), zap.String("event_type", string(event.Type)))
	return nil
}
