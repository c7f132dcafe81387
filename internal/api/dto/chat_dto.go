package dto

import "github.com/spec-kit/gig-market/internal/domain"

// StartConversationRequest payload.
type StartConversationRequest struct {
	RecipientID   string `json:"recipient_id"`
	RecipientName string `json:"recipient_name"`
}

// SendMessageRequest payload.
type SendMessageRequest struct {
	Text string `json:"text"`
}

// SendPaymentRequest payload.
type SendPaymentRequest struct {
	Amount float64 `json:"amount"`
}

// ReportRequest payload shared by conversation and comment reports.
type ReportRequest struct {
	Reason string `json:"reason"`
}

// ConversationSummary is a row of the conversation list.
type ConversationSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar"`
	RecipientID  string `json:"recipient_id"`
	LastMessage  string `json:"last_message"`
	Time         string `json:"time"`
	Unread       int    `json:"unread"`
	Reported     bool   `json:"reported"`
	ReportReason string `json:"report_reason,omitempty"`
}

// ConversationDetail includes the message history.
type ConversationDetail struct {
	ConversationSummary
	Messages []MessageResponse `json:"messages"`
}

// MessageResponse represents one chat entry.
type MessageResponse struct {
	ID            string               `json:"id"`
	Text          string               `json:"text"`
	Sender        domain.Sender        `json:"sender"`
	Time          string               `json:"time"`
	Type          domain.MessageType   `json:"type"`
	PaymentAmount *float64             `json:"payment_amount,omitempty"`
	PaymentStatus domain.PaymentStatus `json:"payment_status,omitempty"`
	ReceiptNumber string               `json:"receipt_number,omitempty"`
	JobTitle      string               `json:"job_title,omitempty"`
}
