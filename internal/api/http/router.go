package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gig-market/internal/api/http/handlers"
	"github.com/spec-kit/gig-market/internal/auth"
	"github.com/spec-kit/gig-market/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Jobs           *handlers.JobsHandler
	Comments       *handlers.CommentsHandler
	Conversations  *handlers.ConversationsHandler
	Profile        *handlers.ProfileHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	requireUser := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireAnyRole()}
	requireWorker := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleWorker)}
	requireEmployer := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleEmployer)}

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/logout", with(requireUser, cfg.Auth.Logout)...)
	authGroup.Get("/me", with(requireUser, cfg.Auth.Me)...)

	app.Get("/categories", cfg.Jobs.Categories)

	jobs := app.Group("/jobs")
	jobs.Get("/", cfg.Jobs.ListJobs)
	jobs.Get("/mine", with(requireEmployer, cfg.Jobs.MyJobs)...)
	jobs.Post("/", with(requireEmployer, cfg.Jobs.CreateJob)...)
	jobs.Get("/:id", cfg.Jobs.GetJob)
	jobs.Post("/:id/apply", with(requireWorker, cfg.Jobs.Apply)...)
	jobs.Patch("/:id/status", with(requireEmployer, cfg.Jobs.UpdateStatus)...)
	jobs.Get("/:id/comments", cfg.Comments.List)
	jobs.Post("/:id/comments", with(requireUser, cfg.Comments.Add)...)

	comments := app.Group("/comments", requireUser...)
	comments.Post("/:id/like", cfg.Comments.Like)
	comments.Post("/:id/report", cfg.Comments.Report)

	conversations := app.Group("/conversations", requireUser...)
	conversations.Get("/", cfg.Conversations.List)
	conversations.Post("/", cfg.Conversations.Start)
	conversations.Get("/:id", cfg.Conversations.Get)
	conversations.Post("/:id/messages", cfg.Conversations.SendMessage)
	conversations.Post("/:id/payments", cfg.Conversations.SendPayment)
	conversations.Post("/:id/report", cfg.Conversations.Report)
	conversations.Post("/:id/read", cfg.Conversations.MarkAsRead)

	app.Get("/profile", with(requireUser, cfg.Profile.Get)...)
}

func with(guards []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(guards)+1)
	chain = append(chain, guards...)
	return append(chain, handler)
}
