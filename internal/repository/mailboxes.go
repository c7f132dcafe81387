package repository

import (
	"sync"

	"github.com/spec-kit/gig-market/internal/domain"
)

// Mailboxes hands out one ChatStore per user, creating it on first use.
type Mailboxes struct {
	mu     sync.Mutex
	stores map[string]ChatStore
	seed   func(userID string) []domain.Conversation
	opts   ChatOptions
}

// NewMailboxes builds a directory. seed may be nil; when set it supplies the
// initial conversations of a user's mailbox.
func NewMailboxes(seed func(userID string) []domain.Conversation, opts ChatOptions) *Mailboxes {
	return &Mailboxes{
		stores: make(map[string]ChatStore),
		seed:   seed,
		opts:   opts,
	}
}

// For returns userID's chat store.
func (m *Mailboxes) For(userID string) ChatStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	if store, ok := m.stores[userID]; ok {
		return store
	}
	var initial []domain.Conversation
	if m.seed != nil {
		initial = m.seed(userID)
	}
	store := NewChatStore(initial, m.opts)
	m.stores[userID] = store
	return store
}
