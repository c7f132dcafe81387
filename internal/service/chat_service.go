package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/gig-market/internal/domain"
	"github.com/spec-kit/gig-market/internal/events"
	"github.com/spec-kit/gig-market/internal/latency"
	"github.com/spec-kit/gig-market/internal/repository"
	"github.com/spec-kit/gig-market/internal/validation"
	apperrors "github.com/spec-kit/gig-market/pkg/util/errorutil"
)

// ChatService exposes one user's mailbox and the messaging workflows.
type ChatService struct {
	mailboxes  *repository.Mailboxes
	dispatcher events.Dispatcher
	payment    latency.Simulator
	logger     *zap.Logger
	newID      func() string
	receipt    func() string
	now        func() time.Time
}

// ChatDependencies bundles collaborators for ChatService.
type ChatDependencies struct {
	Mailboxes      *repository.Mailboxes
	Dispatcher     events.Dispatcher
	PaymentLatency latency.Simulator
	Logger         *zap.Logger
	NewID          func() string
	Receipt        func() string
	Now            func() time.Time
}

// StartConversationInput opens a thread with a counterpart.
type StartConversationInput struct {
	RecipientID   string `json:"recipient_id" validate:"required"`
	RecipientName string `json:"recipient_name" validate:"required"`
}

type textInput struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type paymentInput struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

type reportInput struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// NewChatService constructs the service.
func NewChatService(deps ChatDependencies) *ChatService {
	s := &ChatService{
		mailboxes:  deps.Mailboxes,
		dispatcher: deps.Dispatcher,
		payment:    deps.PaymentLatency,
		logger:     deps.Logger,
		newID:      deps.NewID,
		receipt:    deps.Receipt,
		now:        deps.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.receipt == nil {
		s.receipt = ReceiptNumber
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ReceiptNumber returns a fresh "RCP-XXXXXXXX" payment reference.
func ReceiptNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "RCP-" + strings.ToUpper(raw[:8])
}

// PaymentText renders the chat text of a payment message.
func PaymentText(amount float64) string {
	return fmt.Sprintf("%.2f ₼ ödəniş göndərildi", amount)
}

// List returns the owner's conversations, newest first.
func (s *ChatService) List(owner *domain.User) ([]domain.Conversation, error) {
	if err := requireUser(owner); err != nil {
		return nil, err
	}
	return s.mailboxes.For(owner.ID).Conversations(), nil
}

// Get returns one of the owner's conversations.
func (s *ChatService) Get(owner *domain.User, conversationID string) (*domain.Conversation, error) {
	if err := requireUser(owner); err != nil {
		return nil, err
	}
	conv, ok := s.mailboxes.For(owner.ID).Conversation(conversationID)
	if !ok {
		return nil, conversationNotFound(conversationID)
	}
	return &conv, nil
}

// StartConversation returns the owner's thread with the recipient, creating it
// when none exists.
func (s *ChatService) StartConversation(owner *domain.User, in StartConversationInput) (*domain.Conversation, error) {
	if err := requireUser(owner); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.RecipientID == owner.ID {
		return nil, apperrors.NewValidationError("cannot start a conversation with yourself", nil)
	}
	store := s.mailboxes.For(owner.ID)
	store.AddConversation(domain.Conversation{
		ID:          s.newID(),
		Name:        in.RecipientName,
		Avatar:      domain.AvatarInitial(in.RecipientName),
		RecipientID: in.RecipientID,
		Messages:    []domain.Message{},
	})
	conv, _ := store.ConversationWith(in.RecipientID)
	return &conv, nil
}

// SendText appends a text message written by the owner.
func (s *ChatService) SendText(ctx context.Context, owner *domain.User, conversationID, text string) (*domain.Message, error) {
	if err := requireUser(owner); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if err := validation.Struct(textInput{Text: text}); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	msg := domain.Message{
		ID:     s.newID(),
		Text:   text,
		Sender: domain.SenderUser,
		Time:   s.now().Format(repository.TimeLayout),
		Type:   domain.MessageTypeText,
	}
	conv, err := s.append(owner, conversationID, msg)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventMessageSent, owner, events.MessageSentPayload{
		ConversationID: conv.ID,
		RecipientID:    conv.RecipientID,
		Message:        msg,
	})
	return &msg, nil
}

// SendPayment waits out the payment delay then appends a completed payment
// message with a fresh receipt number.
func (s *ChatService) SendPayment(ctx context.Context, owner *domain.User, conversationID string, amount float64) (*domain.Message, error) {
	if err := requireUser(owner); err != nil {
		return nil, err
	}
	if err := validation.Struct(paymentInput{Amount: amount}); err != nil {
		return nil, err
	}
	if _, ok := s.mailboxes.For(owner.ID).Conversation(conversationID); !ok {
		return nil, conversationNotFound(conversationID)
	}
	if err := s.payment.Wait(ctx); err != nil {
		return nil, err
	}

	paid := amount
	msg := domain.Message{
		ID:            s.newID(),
		Text:          PaymentText(amount),
		Sender:        domain.SenderUser,
		Time:          s.now().Format(repository.TimeLayout),
		Type:          domain.MessageTypePayment,
		PaymentAmount: &paid,
		PaymentStatus: domain.PaymentCompleted,
		ReceiptNumber: s.receipt(),
	}
	conv, err := s.append(owner, conversationID, msg)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventPaymentSent, owner, events.MessageSentPayload{
		ConversationID: conv.ID,
		RecipientID:    conv.RecipientID,
		Message:        msg,
	})
	return &msg, nil
}

// Report flags the conversation with a reason.
func (s *ChatService) Report(ctx context.Context, owner *domain.User, conversationID, reason string) (*domain.Conversation, error) {
	if err := requireUser(owner); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if err := validation.Struct(reportInput{Reason: reason}); err != nil {
		return nil, err
	}
	store := s.mailboxes.For(owner.ID)
	if !store.ReportConversation(conversationID, reason) {
		return nil, conversationNotFound(conversationID)
	}
	conv, _ := store.Conversation(conversationID)
	s.publish(ctx, events.EventConversationReported, owner, events.ConversationReportedPayload{
		ConversationID: conv.ID,
		RecipientID:    conv.RecipientID,
		Reason:         reason,
	})
	return &conv, nil
}

// MarkAsRead clears the unread counter.
func (s *ChatService) MarkAsRead(owner *domain.User, conversationID string) (*domain.Conversation, error) {
	if err := requireUser(owner); err != nil {
		return nil, err
	}
	store := s.mailboxes.For(owner.ID)
	if !store.MarkAsRead(conversationID) {
		return nil, conversationNotFound(conversationID)
	}
	conv, _ := store.Conversation(conversationID)
	return &conv, nil
}

func (s *ChatService) append(owner *domain.User, conversationID string, msg domain.Message) (domain.Conversation, error) {
	store := s.mailboxes.For(owner.ID)
	if !store.AddMessage(conversationID, msg) {
		return domain.Conversation{}, conversationNotFound(conversationID)
	}
	conv, _ := store.Conversation(conversationID)
	return conv, nil
}

func (s *ChatService) publish(ctx context.Context, eventType events.EventType, actor *domain.User, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actorOf(actor),
		Timestamp: s.now(),
		Payload:   payload,
	})
	if err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

func conversationNotFound(id string) error {
	return apperrors.NewNotFound("conversation", map[string]any{"conversation_id": id})
}
