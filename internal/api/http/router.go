package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-board/internal/api/http/handlers"
	"github.com/spec-kit/issue-board/internal/auth"
	"github.com/spec-kit/issue-board/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Issues         *handlers.IssuesHandler
	Board          *handlers.BoardHandler
	Projects       *handlers.ProjectsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	api.Get("/issues", cfg.Issues.List)
	api.Post("/issues", cfg.Issues.Create)
	api.Get("/issues/:id", cfg.Issues.Get)
	api.Patch("/issues/:id/assign", cfg.Issues.Assign)
	api.Patch("/issues/:id/status", cfg.Issues.UpdateStatus)
	api.Delete("/issues/:id", cfg.Issues.Delete)

	api.Get("/board", cfg.Board.Board)
	api.Get("/dashboard/summary", cfg.Board.Summary)

	api.Get("/projects", cfg.Projects.List)
	api.Post("/projects", auth.RequireRole(domain.RoleAdmin, domain.RoleManager), cfg.Projects.Create)
	api.Get("/projects/:id", cfg.Projects.Get)
	api.Patch("/projects/:id/members", cfg.Projects.AddMember)
	api.Delete("/projects/:id", cfg.Projects.Delete)

	api.Get("/metrics", auth.RequireRole(domain.RoleAdmin), cfg.Health.Metrics)
}
