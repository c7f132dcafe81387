package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/spec-kit/gig-market/internal/api/http"
	"github.com/spec-kit/gig-market/internal/api/http/handlers"
	"github.com/spec-kit/gig-market/internal/auth"
	"github.com/spec-kit/gig-market/internal/config"
	"github.com/spec-kit/gig-market/internal/events"
	"github.com/spec-kit/gig-market/internal/latency"
	"github.com/spec-kit/gig-market/internal/observability"
	"github.com/spec-kit/gig-market/internal/persistence"
	"github.com/spec-kit/gig-market/internal/repository"
	"github.com/spec-kit/gig-market/internal/seed"
	"github.com/spec-kit/gig-market/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, cfg.App.Name, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var redis *persistence.Redis
	sessions := repository.NewMemorySessionStore()
	if cfg.Market.SessionBackend == config.SessionBackendRedis {
		redis, err = persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redis.Close()
		sessions = repository.NewRedisSessionStore(redis.Client, redis.SessionPrefix())
	}

	data := &seed.Data{}
	if cfg.Market.SeedDemoData {
		data, err = seed.Default(time.Now())
		if err != nil {
			logger.Fatal("failed to load demo data", zap.Error(err))
		}
	}

	static, err := auth.NewStaticCredentials(cfg.Auth.BcryptCost, data.Accounts...)
	if err != nil {
		logger.Fatal("failed to build credential table", zap.Error(err))
	}
	var verifier auth.CredentialVerifier = static
	if pg.Enabled() {
		verifier = auth.NewChainCredentials(static, auth.NewDirectoryCredentials(repository.NewAccountRepository(pg.PoolHandle()), cfg.Auth.BcryptCost))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	jobStore := repository.NewJobStore(data.Jobs)
	mailboxes := repository.NewMailboxes(data.ConversationsFor, repository.ChatOptions{})
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	authStore := service.NewAuthStore(service.AuthDependencies{
		Verifier:        verifier,
		Sessions:        sessions,
		LoginLatency:    latency.New(config.Latency(cfg.Market.LoginLatencyMS)),
		RegisterLatency: latency.New(config.Latency(cfg.Market.RegisterLatencyMS)),
		SessionTTL:      tokens.TTL(),
	})
	jobService := service.NewJobService(service.JobDependencies{
		Jobs:          jobStore,
		Mailboxes:     mailboxes,
		Dispatcher:    dispatcher,
		CreateLatency: latency.New(config.Latency(cfg.Market.JobCreateLatencyMS)),
		Logger:        logger,
	})
	chatService := service.NewChatService(service.ChatDependencies{
		Mailboxes:      mailboxes,
		Dispatcher:     dispatcher,
		PaymentLatency: latency.New(config.Latency(cfg.Market.PaymentLatencyMS)),
		Logger:         logger,
	})
	commentService := service.NewCommentService(service.CommentDependencies{
		Comments:      repository.NewCommentStore(),
		Jobs:          jobStore,
		Dispatcher:    dispatcher,
		Logger:        logger,
		RequireRating: true,
	})
	notificationService := service.NewNotificationService(dispatcher, mailboxes, metrics, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authStore, tokens),
		Jobs:           handlers.NewJobsHandler(jobService),
		Comments:       handlers.NewCommentsHandler(commentService),
		Conversations:  handlers.NewConversationsHandler(chatService),
		Profile:        handlers.NewProfileHandler(jobService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, sessions),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			return fmt.Errorf("fiber listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Error(context.Cause(gctx)))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", zap.Error(err))
	}
}
