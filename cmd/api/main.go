package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/issue-board/internal/api/http"
	"github.com/spec-kit/issue-board/internal/api/http/handlers"
	"github.com/spec-kit/issue-board/internal/auth"
	"github.com/spec-kit/issue-board/internal/config"
	"github.com/spec-kit/issue-board/internal/events"
	"github.com/spec-kit/issue-board/internal/observability"
	"github.com/spec-kit/issue-board/internal/persistence"
	"github.com/spec-kit/issue-board/internal/policy"
	"github.com/spec-kit/issue-board/internal/repository"
	"github.com/spec-kit/issue-board/internal/service"
	"github.com/spec-kit/issue-board/internal/session"
	"github.com/spec-kit/issue-board/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	issueRepo := repository.NewIssueRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)

	sessions := session.NewManager()
	revoked := auth.NewRevocationList(redis.Client, logger)
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Sessions:   sessions,
		Revocation: revoked,
	})
	issueService := service.NewIssueService(service.IssueDependencies{
		IssueRepo:  issueRepo,
		Dispatcher: dispatcher,
	})
	projectService := service.NewProjectService(projectRepo, dispatcher)

	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	rolePolicy := policy.New(policy.Options{
		TesterClosesOwnUnassigned: cfg.Policy.TesterClosesOwnUnassigned,
	})

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, sessions, revoked)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, sessions, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Issues:         handlers.NewIssuesHandler(issueService, rolePolicy),
		Board:          handlers.NewBoardHandler(issueService),
		Projects:       handlers.NewProjectsHandler(projectService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
