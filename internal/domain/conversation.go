package domain

// Sender tags which side of a conversation wrote a message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderOther Sender = "other"
)

// MessageType differentiates plain text from synthesized messages.
type MessageType string

const (
	MessageTypeText        MessageType = "text"
	MessageTypePayment     MessageType = "payment"
	MessageTypeApplication MessageType = "application"
)

// PaymentStatus tracks payment messages.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

// Message is a single chat entry.
type Message struct {
	ID            string
	Text          string
	Sender        Sender
	Time          string
	Type          MessageType
	PaymentAmount *float64
	PaymentStatus PaymentStatus
	ReceiptNumber string
	JobTitle      string
}

// Conversation is a thread with one counterpart.
type Conversation struct {
	ID           string
	Name         string
	LastMessage  string
	Unread       int
	Time         string
	Avatar       string
	RecipientID  string
	Messages     []Message
	Reported     bool
	ReportReason string
}

// Clone copies the conversation and its message history.
func (c Conversation) Clone() Conversation {
	c.Messages = append([]Message(nil), c.Messages...)
	return c
}

// AvatarInitial returns the first rune of name, or "?" for an empty name.
func AvatarInitial(name string) string {
	for _, r := range name {
		return string(r)
	}
	return "?"
}
