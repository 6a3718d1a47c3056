package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Messages       *handlers.MessagesHandler
	Users          *handlers.UsersHandler
	Uploads        *handlers.UploadsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role checks follow a fixed policy table:
// anonymous callers may only submit contact messages, authenticated users own
// their tickets, admins see everything.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/verify", cfg.AuthMiddleware.Handle, cfg.Auth.Verify)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/stats", auth.RequireAdmin(), cfg.Tickets.Stats)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", auth.RequireAdmin(), cfg.Tickets.UpdateStatus)

	messages := app.Group("/messages")
	messages.Post("/", cfg.Messages.Submit)
	messages.Get("/", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Messages.List)
	messages.Get("/stats", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Messages.Stats)
	messages.Patch("/:id", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Messages.Update)
	messages.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Messages.Delete)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	users.Get("/", auth.RequireAdmin(), cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Patch("/:id", auth.RequireAdmin(), cfg.Users.Update)
	users.Delete("/:id", auth.RequireAdmin(), cfg.Users.Delete)

	app.Post("/upload", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Uploads.Upload)
	app.Get("/uploads", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Uploads.List)
}
