package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/gig-market/internal/domain"
)

// TimeLayout is the display format of message times.
const TimeLayout = "15:04"

// ChatStore owns one user's conversations and their message histories.
type ChatStore interface {
	AddConversation(conv domain.Conversation) bool
	AddMessage(conversationID string, msg domain.Message) bool
	SendApplicationMessage(recipientID, recipientName, jobTitle string) domain.Conversation
	Receive(senderID, senderName string, msg domain.Message) domain.Conversation
	ReportConversation(conversationID, reason string) bool
	MarkAsRead(conversationID string) bool
	Conversation(id string) (domain.Conversation, bool)
	ConversationWith(recipientID string) (domain.Conversation, bool)
	Conversations() []domain.Conversation
}

// ChatOptions controls id and clock sources of a ChatStore.
type ChatOptions struct {
	NewID func() string
	Now   func() time.Time
}

func (o ChatOptions) withDefaults() ChatOptions {
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type chatStore struct {
	mu    sync.RWMutex
	convs []domain.Conversation
	opts  ChatOptions
}

// NewChatStore builds a store seeded with conversations.
func NewChatStore(seed []domain.Conversation, opts ChatOptions) ChatStore {
	convs := make([]domain.Conversation, 0, len(seed))
	for _, conv := range seed {
		convs = append(convs, conv.Clone())
	}
	return &chatStore{convs: convs, opts: opts.withDefaults()}
}

// ApplicationText is the synthesized text of an application message.
func ApplicationText(jobTitle string) string {
	return fmt.Sprintf("\"%s\" elanına müraciət etdim", jobTitle)
}

// AddConversation inserts conv at the front unless its recipient already has one.
func (s *chatStore) AddConversation(conv domain.Conversation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexByRecipient(conv.RecipientID) >= 0 {
		return false
	}
	s.convs = append([]domain.Conversation{conv.Clone()}, s.convs...)
	return true
}

func (s *chatStore) AddMessage(conversationID string, msg domain.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(conversationID)
	if i < 0 {
		return false
	}
	s.appendLocked(i, msg)
	return true
}

// SendApplicationMessage finds or creates the conversation with recipientID and
// appends an application message naming jobTitle.
func (s *chatStore) SendApplicationMessage(recipientID, recipientName, jobTitle string) domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := domain.Message{
		ID:       s.opts.NewID(),
		Text:     ApplicationText(jobTitle),
		Sender:   domain.SenderUser,
		Time:     s.opts.Now().Format(TimeLayout),
		Type:     domain.MessageTypeApplication,
		JobTitle: jobTitle,
	}
	i := s.findOrCreateLocked(recipientID, recipientName)
	s.appendLocked(i, msg)
	return s.convs[i].Clone()
}

// Receive stores a message written by the counterpart senderID and bumps the unread count.
func (s *chatStore) Receive(senderID, senderName string, msg domain.Message) domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.Sender = domain.SenderOther
	i := s.findOrCreateLocked(senderID, senderName)
	s.appendLocked(i, msg)
	s.convs[i].Unread++
	return s.convs[i].Clone()
}

func (s *chatStore) ReportConversation(conversationID, reason string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(conversationID)
	if i < 0 {
		return false
	}
	s.convs[i].Reported = true
	s.convs[i].ReportReason = reason
	return true
}

func (s *chatStore) MarkAsRead(conversationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexByID(conversationID)
	if i < 0 {
		return false
	}
	s.convs[i].Unread = 0
	return true
}

func (s *chatStore) Conversation(id string) (domain.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexByID(id)
	if i < 0 {
		return domain.Conversation{}, false
	}
	return s.convs[i].Clone(), true
}

func (s *chatStore) ConversationWith(recipientID string) (domain.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexByRecipient(recipientID)
	if i < 0 {
		return domain.Conversation{}, false
	}
	return s.convs[i].Clone(), true
}

func (s *chatStore) Conversations() []domain.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Conversation, 0, len(s.convs))
	for _, conv := range s.convs {
		result = append(result, conv.Clone())
	}
	return result
}

// appendLocked keeps LastMessage and Time equal to the newest message.
func (s *chatStore) appendLocked(i int, msg domain.Message) {
	s.convs[i].Messages = append(s.convs[i].Messages, msg)
	s.convs[i].LastMessage = msg.Text
	s.convs[i].Time = msg.Time
}

func (s *chatStore) findOrCreateLocked(recipientID, recipientName string) int {
	if i := s.indexByRecipient(recipientID); i >= 0 {
		return i
	}
	conv := domain.Conversation{
		ID:          s.opts.NewID(),
		Name:        recipientName,
		Avatar:      domain.AvatarInitial(recipientName),
		RecipientID: recipientID,
	}
	s.convs = append([]domain.Conversation{conv}, s.convs...)
	return 0
}

func (s *chatStore) indexByID(id string) int {
	for i := range s.convs {
		if s.convs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *chatStore) indexByRecipient(recipientID string) int {
	for i := range s.convs {
		if s.convs[i].RecipientID == recipientID {
			return i
		}
	}
	return -1
}
