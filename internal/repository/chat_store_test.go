package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gig-market/internal/domain"
)

func fixedChatOptions() ChatOptions {
	n := 0
	return ChatOptions{
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Now: func() time.Time { return time.Date(2026, 3, 1, 14, 5, 0, 0, time.UTC) },
	}
}

func seedConversations() []domain.Conversation {
	return []domain.Conversation{
		{
			ID: "conv-1", Name: "Aysel Quliyeva", Avatar: "A", RecipientID: "4", Unread: 2,
			LastMessage: "Əla, orda olacam!", Time: "10:33",
			Messages: []domain.Message{{ID: "1", Text: "Əla, orda olacam!", Sender: domain.SenderOther, Time: "10:33", Type: domain.MessageTypeText}},
		},
		{ID: "conv-2", Name: "Cafe Milano", Avatar: "C", RecipientID: "5"},
	}
}

func TestChatStore_AddConversationIsIdempotentPerRecipient(t *testing.T) {
	store := NewChatStore(seedConversations(), fixedChatOptions())

	assert.False(t, store.AddConversation(domain.Conversation{ID: "dup", RecipientID: "4"}))
	assert.Len(t, store.Conversations(), 2)

	assert.True(t, store.AddConversation(domain.Conversation{ID: "conv-3", RecipientID: "9"}))
	convs := store.Conversations()
	require.Len(t, convs, 3)
	assert.Equal(t, "conv-3", convs[0].ID)
}

func TestChatStore_AddMessageUpdatesProjection(t *testing.T) {
	store := NewChatStore(seedConversations(), fixedChatOptions())

	ok := store.AddMessage("conv-2", domain.Message{ID: "m1", Text: "Salam", Sender: domain.SenderUser, Time: "11:00", Type: domain.MessageTypeText})
	require.True(t, ok)

	conv, _ := store.Conversation("conv-2")
	require.Len(t, conv.Messages, 1)
	last := conv.Messages[len(conv.Messages)-1]
	assert.Equal(t, last.Text, conv.LastMessage)
	assert.Equal(t, last.Time, conv.Time)

	assert.False(t, store.AddMessage("missing", domain.Message{Text: "lost"}))
}

func TestChatStore_SendApplicationMessageCreatesConversation(t *testing.T) {
	store := NewChatStore(nil, fixedChatOptions())

	conv := store.SendApplicationMessage("2", "Event Pro MMC", "Tədbir köməkçisi")

	require.Len(t, store.Conversations(), 1)
	require.Len(t, conv.Messages, 1)
	msg := conv.Messages[0]
	assert.Equal(t, domain.MessageTypeApplication, msg.Type)
	assert.Equal(t, domain.SenderUser, msg.Sender)
	assert.Contains(t, msg.Text, "Tədbir köməkçisi")
	assert.Equal(t, "\"Tədbir köməkçisi\" elanına müraciət etdim", msg.Text)
	assert.Equal(t, "14:05", msg.Time)
	assert.Equal(t, "E", conv.Avatar)
	assert.Equal(t, 0, conv.Unread)
	assert.Equal(t, msg.Text, conv.LastMessage)
}

func TestChatStore_SendApplicationMessageReusesConversation(t *testing.T) {
	store := NewChatStore(seedConversations(), fixedChatOptions())

	conv := store.SendApplicationMessage("4", "Aysel Quliyeva", "Kuryer")

	assert.Equal(t, "conv-1", conv.ID)
	assert.Len(t, conv.Messages, 2)
	assert.Len(t, store.Conversations(), 2)
}

func TestChatStore_TitleWithQuotesIsVerbatim(t *testing.T) {
	store := NewChatStore(nil, fixedChatOptions())
	conv := store.SendApplicationMessage("2", "X", `Bar "VIP" zal`)
	assert.Contains(t, conv.LastMessage, `Bar "VIP" zal`)
}

func TestChatStore_ReceiveTagsOtherAndCountsUnread(t *testing.T) {
	store := NewChatStore(seedConversations(), fixedChatOptions())

	conv := store.Receive("4", "Aysel Quliyeva", domain.Message{ID: "m", Text: "Gəlirəm", Sender: domain.SenderUser, Time: "12:00"})
	assert.Equal(t, "conv-1", conv.ID)
	assert.Equal(t, 3, conv.Unread)
	assert.Equal(t, domain.SenderOther, conv.Messages[len(conv.Messages)-1].Sender)

	fresh := store.Receive("77", "Nigar", domain.Message{ID: "n", Text: "Salam", Time: "12:01"})
	assert.Equal(t, 1, fresh.Unread)
	assert.Equal(t, "N", fresh.Avatar)
}

func TestChatStore_ReportAndMarkAsRead(t *testing.T) {
	store := NewChatStore(seedConversations(), fixedChatOptions())

	require.True(t, store.ReportConversation("conv-1", "spam"))
	require.True(t, store.MarkAsRead("conv-1"))
	assert.False(t, store.ReportConversation("missing", "spam"))
	assert.False(t, store.MarkAsRead("missing"))

	conv, _ := store.Conversation("conv-1")
	assert.True(t, conv.Reported)
	assert.Equal(t, "spam", conv.ReportReason)
	assert.Equal(t, 0, conv.Unread)
	assert.Len(t, conv.Messages, 1)
}

func TestChatStore_ConversationWith(t *testing.T) {
	store := NewChatStore(seedConversations(), fixedChatOptions())

	conv, ok := store.ConversationWith("5")
	require.True(t, ok)
	assert.Equal(t, "conv-2", conv.ID)

	_, ok = store.ConversationWith("404")
	assert.False(t, ok)
}

func TestMailboxes_SeedsLazilyAndIsolatesUsers(t *testing.T) {
	seeded := 0
	boxes := NewMailboxes(func(userID string) []domain.Conversation {
		seeded++
		if userID == "1" {
			return seedConversations()
		}
		return nil
	}, fixedChatOptions())

	assert.Len(t, boxes.For("1").Conversations(), 2)
	assert.Empty(t, boxes.For("2").Conversations())
	assert.Same(t, boxes.For("1"), boxes.For("1"))
	assert.Equal(t, 2, seeded)

	boxes.For("2").SendApplicationMessage("1", "Əli", "Kuryer")
	assert.Len(t, boxes.For("1").Conversations(), 2)
}
