package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gig-market/internal/config"
)

func TestConstructorsNeedEndpoints(t *testing.T) {
	assert.Nil(t, NewSMTPMailer(config.NotificationConfig{}))
	assert.Nil(t, NewWebhook(config.NotificationConfig{}))

	mailer := NewSMTPMailer(config.NotificationConfig{SMTPHost: "smtp.example.com", SMTPPort: 587, EmailFrom: "noreply@example.com"})
	require.NotNil(t, mailer)
	assert.Equal(t, "smtp.example.com", mailer.dialer.Host)

	hook := NewWebhook(config.NotificationConfig{WebhookURL: "http://127.0.0.1:1"})
	require.NotNil(t, hook)
	assert.Equal(t, 2*time.Second, hook.timeout)
}

func TestSMTPMailerHonoursCancellation(t *testing.T) {
	mailer := NewSMTPMailer(config.NotificationConfig{SMTPHost: "smtp.example.com", SMTPPort: 587})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, mailer.Send(ctx, "a@example.com", "s", "b"), context.Canceled)
}

func TestWebhookPostsJSON(t *testing.T) {
	received := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		var doc map[string]any
		_ = json.Unmarshal(raw, &doc)
		received <- doc
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	hook := NewWebhook(config.NotificationConfig{WebhookURL: srv.URL})
	require.NoError(t, hook.Post(context.Background(), map[string]any{"type": "job_created"}))

	doc := <-received
	assert.Equal(t, "job_created", doc["type"])
}

func TestWebhookReportsFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	hook := NewWebhook(config.NotificationConfig{WebhookURL: srv.URL})
	err := hook.Post(context.Background(), map[string]string{"type": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
