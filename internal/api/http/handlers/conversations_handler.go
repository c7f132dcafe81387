package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gig-market/internal/api/dto"
	"github.com/spec-kit/gig-market/internal/auth"
	"github.com/spec-kit/gig-market/internal/domain"
	"github.com/spec-kit/gig-market/internal/service"
	apperrors "github.com/spec-kit/gig-market/pkg/util/errorutil"
)

// ConversationsHandler exposes the caller's mailbox.
type ConversationsHandler struct {
	service *service.ChatService
}

// NewConversationsHandler constructs handler.
func NewConversationsHandler(chatService *service.ChatService) *ConversationsHandler {
	return &ConversationsHandler{service: chatService}
}

// List GET /conversations.
func (h *ConversationsHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	convs, err := h.service.List(user)
	if err != nil {
		return err
	}
	items := make([]dto.ConversationSummary, 0, len(convs))
	for i := range convs {
		items = append(items, conversationSummary(&convs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /conversations/:id.
func (h *ConversationsHandler) Get(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	conv, err := h.service.Get(user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": conversationDetail(conv)})
}

// Start POST /conversations.
func (h *ConversationsHandler) Start(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.StartConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	conv, err := h.service.StartConversation(user, service.StartConversationInput{
		RecipientID:   req.RecipientID,
		RecipientName: req.RecipientName,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": conversationDetail(conv)})
}

// SendMessage POST /conversations/:id/messages.
func (h *ConversationsHandler) SendMessage(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	msg, err := h.service.SendText(c.UserContext(), user, c.Params("id"), req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": messageResponse(msg)})
}

// SendPayment POST /conversations/:id/payments.
func (h *ConversationsHandler) SendPayment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.SendPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	msg, err := h.service.SendPayment(c.UserContext(), user, c.Params("id"), req.Amount)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": messageResponse(msg)})
}

// Report POST /conversations/:id/report.
func (h *ConversationsHandler) Report(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	conv, err := h.service.Report(c.UserContext(), user, c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": conversationSummary(conv)})
}

// MarkAsRead POST /conversations/:id/read.
func (h *ConversationsHandler) MarkAsRead(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	conv, err := h.service.MarkAsRead(user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": conversationSummary(conv)})
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	return principal.User, nil
}

func conversationSummary(conv *domain.Conversation) dto.ConversationSummary {
	return dto.ConversationSummary{
		ID:           conv.ID,
		Name:         conv.Name,
		Avatar:       conv.Avatar,
		RecipientID:  conv.RecipientID,
		LastMessage:  conv.LastMessage,
		Time:         conv.Time,
		Unread:       conv.Unread,
		Reported:     conv.Reported,
		ReportReason: conv.ReportReason,
	}
}

func conversationDetail(conv *domain.Conversation) dto.ConversationDetail {
	msgs := make([]dto.MessageResponse, 0, len(conv.Messages))
	for i := range conv.Messages {
		msgs = append(msgs, messageResponse(&conv.Messages[i]))
	}
	return dto.ConversationDetail{
		ConversationSummary: conversationSummary(conv),
		Messages:            msgs,
	}
}

func messageResponse(msg *domain.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:            msg.ID,
		Text:          msg.Text,
		Sender:        msg.Sender,
		Time:          msg.Time,
		Type:          msg.Type,
		PaymentAmount: msg.PaymentAmount,
		PaymentStatus: msg.PaymentStatus,
		ReceiptNumber: msg.ReceiptNumber,
		JobTitle:      msg.JobTitle,
	}
}
