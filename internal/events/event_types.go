package events

import (
	"time"

	"github.com/spec-kit/gig-market/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobCreated           EventType = "job_created"
	EventJobApplied           EventType = "job_applied"
	EventJobStatusChanged     EventType = "job_status_changed"
	EventMessageSent          EventType = "message_sent"
	EventPaymentSent          EventType = "payment_sent"
	EventConversationReported EventType = "conversation_reported"
	EventCommentReported      EventType = "comment_reported"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// JobCreatedPayload payload.
type JobCreatedPayload struct {
	JobID    string          `json:"job_id"`
	Title    string          `json:"title"`
	Category domain.Category `json:"category"`
}

// JobAppliedPayload carries the application message to deliver to the employer.
type JobAppliedPayload struct {
	JobID        string         `json:"job_id"`
	JobTitle     string         `json:"job_title"`
	EmployerID   string         `json:"employer_id"`
	EmployerName string         `json:"employer_name"`
	Message      domain.Message `json:"message"`
}

// JobStatusChangedPayload payload.
type JobStatusChangedPayload struct {
	JobID     string           `json:"job_id"`
	OldStatus domain.JobStatus `json:"old_status"`
	NewStatus domain.JobStatus `json:"new_status"`
}

// MessageSentPayload carries a chat message to deliver to the counterpart.
type MessageSentPayload struct {
	ConversationID string         `json:"conversation_id"`
	RecipientID    string         `json:"recipient_id"`
	Message        domain.Message `json:"message"`
}

// ConversationReportedPayload payload.
type ConversationReportedPayload struct {
	ConversationID string `json:"conversation_id"`
	RecipientID    string `json:"recipient_id"`
	Reason         string `json:"reason"`
}

// CommentReportedPayload payload.
type CommentReportedPayload struct {
	CommentID string `json:"comment_id"`
	JobID     string `json:"job_id"`
	Reason    string `json:"reason"`
}
