package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/gig-market/internal/api/http/handlers"
	"github.com/spec-kit/gig-market/internal/auth"
	"github.com/spec-kit/gig-market/internal/config"
	"github.com/spec-kit/gig-market/internal/events"
	"github.com/spec-kit/gig-market/internal/observability"
	"github.com/spec-kit/gig-market/internal/repository"
	"github.com/spec-kit/gig-market/internal/seed"
	"github.com/spec-kit/gig-market/internal/service"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	data, err := seed.Default(time.Now())
	require.NoError(t, err)
	static, err := auth.NewStaticCredentials(bcrypt.MinCost, data.Accounts...)
	require.NoError(t, err)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	sessions := repository.NewMemorySessionStore()
	jobStore := repository.NewJobStore(data.Jobs)
	mailboxes := repository.NewMailboxes(data.ConversationsFor, repository.ChatOptions{})
	tokens := auth.NewTokenManager("test-secret", 5)

	jobService := service.NewJobService(service.JobDependencies{Jobs: jobStore, Mailboxes: mailboxes, Dispatcher: dispatcher, Logger: logger})
	service.NewNotificationService(dispatcher, mailboxes, metrics, logger, config.NotificationConfig{}).RegisterHandlers()

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, time.Second)
	RegisterRoutes(app, RouteConfig{
		Health: handlers.NewHealthHandler("gig-market", "test", nil, nil, metrics),
		Auth: handlers.NewAuthHandler(service.NewAuthStore(service.AuthDependencies{
			Verifier: static,
			Sessions: sessions,
		}), tokens),
		Jobs: handlers.NewJobsHandler(jobService),
		Comments: handlers.NewCommentsHandler(service.NewCommentService(service.CommentDependencies{
			Comments: repository.NewCommentStore(), Jobs: jobStore, Dispatcher: dispatcher, Logger: logger, RequireRating: true,
		})),
		Conversations: handlers.NewConversationsHandler(service.NewChatService(service.ChatDependencies{
			Mailboxes: mailboxes, Dispatcher: dispatcher, Logger: logger,
		})),
		Profile:        handlers.NewProfileHandler(jobService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, sessions),
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, env := do(t, app, fiber.MethodPost, "/auth/login", "", fiber.Map{"email": email, "password": "test123"})
	require.Equal(t, nethttp.StatusOK, status)
	var data struct {
		Auth struct {
			Token string `json:"token"`
		} `json:"auth"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Auth.Token)
	return data.Auth.Token
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, fiber.MethodGet, "/health/live", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)

	status, _ = do(t, app, fiber.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)

	status, env := do(t, app, fiber.MethodGet, "/health/metrics", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, string(env.Data), "requests")
}

func TestLoginAndMe(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, fiber.MethodPost, "/auth/login", "", fiber.Map{"email": "isci@test.com", "password": "bad"})
	assert.Equal(t, nethttp.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	token := login(t, app, "isci@test.com")
	status, env = do(t, app, fiber.MethodGet, "/auth/me", token, nil)
	require.Equal(t, nethttp.StatusOK, status)
	var me struct {
		Role   string `json:"role"`
		Worker struct {
			StreakTier string `json:"streak_tier"`
			Level      int    `json:"level"`
		} `json:"worker_profile"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "worker", me.Role)
	assert.Equal(t, "gold", me.Worker.StreakTier)
	assert.Equal(t, 2, me.Worker.Level)

	status, _ = do(t, app, fiber.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, nethttp.StatusNoContent, status)
	status, _ = do(t, app, fiber.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, status)
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, fiber.MethodPost, "/auth/register", "", fiber.Map{"email": "x", "role": "admin"})
	assert.Equal(t, nethttp.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "role")

	status, env = do(t, app, fiber.MethodPost, "/auth/register", "", fiber.Map{
		"email": "yeni@test.com", "password": "secret1", "confirm_password": "secret2",
		"name": "Rəşad", "surname": "Kərimov", "role": "worker",
	})
	assert.Equal(t, nethttp.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "must match password", env.Error.Details["confirm_password"])

	status, _ = do(t, app, fiber.MethodPost, "/auth/register", "", fiber.Map{
		"email": "yeni@test.com", "password": "secret1", "confirm_password": "secret1",
		"name": "Rəşad", "surname": "Kərimov", "role": "worker",
	})
	assert.Equal(t, nethttp.StatusCreated, status)

	status, env = do(t, app, fiber.MethodPost, "/auth/register", "", fiber.Map{
		"email": "isci@test.com", "password": "hijack1", "confirm_password": "hijack1",
		"name": "X", "surname": "Y", "role": "employer",
	})
	assert.Equal(t, nethttp.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)
	login(t, app, "isci@test.com")
}

func TestEmployerPostsAndWorkerApplies(t *testing.T) {
	app := newTestApp(t)
	employer := login(t, app, "isveren@test.com")
	worker := login(t, app, "isci@test.com")

	status, _ := do(t, app, fiber.MethodPost, "/jobs", worker, fiber.Map{"title": "x"})
	assert.Equal(t, nethttp.StatusForbidden, status)

	status, env := do(t, app, fiber.MethodPost, "/jobs", employer, fiber.Map{
		"title": "Ofisiant", "category": "restaurant", "location": "Bakı", "salary": 50,
		"salary_unit": "daily", "date": time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
	})
	require.Equal(t, nethttp.StatusCreated, status, env.Error)
	var job struct {
		ID           string `json:"id"`
		EmployerName string `json:"employer_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &job))
	assert.Equal(t, "Event Pro MMC", job.EmployerName)

	status, env = do(t, app, fiber.MethodGet, "/jobs?category=restaurant", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	var list struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.NotEmpty(t, list.Items)
	assert.Equal(t, job.ID, list.Items[0].ID)

	status, _ = do(t, app, fiber.MethodPost, "/jobs/"+job.ID+"/apply", worker, nil)
	assert.Equal(t, nethttp.StatusCreated, status)
	status, env = do(t, app, fiber.MethodPost, "/jobs/"+job.ID+"/apply", worker, nil)
	assert.Equal(t, nethttp.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.Error.Code)
	status, _ = do(t, app, fiber.MethodPost, "/jobs/missing/apply", worker, nil)
	assert.Equal(t, nethttp.StatusNotFound, status)

	status, env = do(t, app, fiber.MethodGet, "/conversations", employer, nil)
	require.Equal(t, nethttp.StatusOK, status)
	var convs []struct {
		RecipientID string `json:"recipient_id"`
		Unread      int    `json:"unread"`
		LastMessage string `json:"last_message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &convs))
	require.Len(t, convs, 1)
	assert.Equal(t, "1", convs[0].RecipientID)
	assert.Equal(t, 1, convs[0].Unread)
	assert.Contains(t, convs[0].LastMessage, "Ofisiant")

	status, env = do(t, app, fiber.MethodGet, "/jobs/mine", employer, nil)
	require.Equal(t, nethttp.StatusOK, status)
	var mine struct {
		Summary struct {
			Total      int `json:"total"`
			Applicants int `json:"applicants"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Equal(t, 3, mine.Summary.Total)
	assert.Equal(t, 1, mine.Summary.Applicants)
}

func TestConversationFlow(t *testing.T) {
	app := newTestApp(t)
	worker := login(t, app, "isci@test.com")

	status, env := do(t, app, fiber.MethodPost, "/conversations/conv-1/messages", worker, fiber.Map{"text": "Salam"})
	require.Equal(t, nethttp.StatusCreated, status, env.Error)

	status, env = do(t, app, fiber.MethodPost, "/conversations/conv-1/payments", worker, fiber.Map{"amount": 0})
	assert.Equal(t, nethttp.StatusBadRequest, status)

	status, env = do(t, app, fiber.MethodPost, "/conversations/conv-1/payments", worker, fiber.Map{"amount": 25})
	require.Equal(t, nethttp.StatusCreated, status)
	var payment struct {
		Type          string `json:"type"`
		PaymentStatus string `json:"payment_status"`
		ReceiptNumber string `json:"receipt_number"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payment))
	assert.Equal(t, "payment", payment.Type)
	assert.Equal(t, "completed", payment.PaymentStatus)
	assert.Regexp(t, `^RCP-[0-9A-F]{8}$`, payment.ReceiptNumber)

	status, env = do(t, app, fiber.MethodPost, "/conversations/conv-1/report", worker, fiber.Map{"reason": "spam"})
	require.Equal(t, nethttp.StatusOK, status)
	var reported struct {
		Reported     bool   `json:"reported"`
		ReportReason string `json:"report_reason"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reported))
	assert.True(t, reported.Reported)
	assert.Equal(t, "spam", reported.ReportReason)

	status, _ = do(t, app, fiber.MethodGet, "/conversations/unknown", worker, nil)
	assert.Equal(t, nethttp.StatusNotFound, status)

	status, _ = do(t, app, fiber.MethodGet, "/conversations", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, status)
}

func TestCommentsAndProfile(t *testing.T) {
	app := newTestApp(t)
	worker := login(t, app, "isci@test.com")
	employer := login(t, app, "isveren@test.com")

	status, env := do(t, app, fiber.MethodPost, "/jobs/job-1/comments", worker, fiber.Map{"text": "Əla", "rating": 5})
	require.Equal(t, nethttp.StatusCreated, status, env.Error)
	var comment struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &comment))

	status, _ = do(t, app, fiber.MethodPost, "/comments/"+comment.ID+"/like", employer, nil)
	assert.Equal(t, nethttp.StatusOK, status)
	status, _ = do(t, app, fiber.MethodPost, "/comments/"+comment.ID+"/like", employer, nil)
	assert.Equal(t, nethttp.StatusConflict, status)
	status, _ = do(t, app, fiber.MethodPost, "/comments/"+comment.ID+"/report", employer, nil)
	assert.Equal(t, nethttp.StatusOK, status)

	status, env = do(t, app, fiber.MethodGet, "/jobs/job-1/comments", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, string(env.Data), comment.ID)

	status, env = do(t, app, fiber.MethodGet, "/profile", employer, nil)
	require.Equal(t, nethttp.StatusOK, status)
	var profile struct {
		User struct {
			Employer struct {
				PostedJobs []string `json:"posted_jobs"`
			} `json:"employer_profile"`
		} `json:"user"`
		Summary *struct {
			Total int `json:"total"`
		} `json:"ads_summary"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, []string{"job-1", "job-4"}, profile.User.Employer.PostedJobs)
	require.NotNil(t, profile.Summary)
	assert.Equal(t, 2, profile.Summary.Total)
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	app := newTestApp(t)
	status, env := do(t, app, fiber.MethodGet, "/nope", "", nil)
	assert.Equal(t, nethttp.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestCategories(t *testing.T) {
	app := newTestApp(t)
	status, env := do(t, app, fiber.MethodGet, "/categories", "", nil)
	require.Equal(t, nethttp.StatusOK, status)
	var cats []struct {
		Value string `json:"value"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	assert.Len(t, cats, 8)
}

func TestListJobsRejectsUnknownFilters(t *testing.T) {
	app := newTestApp(t)

	status, env := do(t, app, fiber.MethodGet, "/jobs?category=spaceflight", "", nil)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Contains(t, env.Error.Details, "category")

	status, env = do(t, app, fiber.MethodGet, "/jobs?match=salary", "", nil)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "match")

	status, _ = do(t, app, fiber.MethodGet, "/jobs?category=Restaurant&match=none", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)
}
