package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andreeesz17/inmobiliaria-service/internal/api/http/handlers"
	"github.com/andreeesz17/inmobiliaria-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Home           *handlers.HomeHandler
	Properties     *handlers.PropertiesHandler
	Appointments   *handlers.AppointmentsHandler
	Requests       *handlers.RequestsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Every protected group is gated by the
// capability table through RequireArea, so a role change only needs a table edit.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.AuthMiddleware.Handle)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/session", cfg.Auth.Session)

	app.Get("/home", cfg.Home.Home)
	app.Get("/admin", auth.RequireArea(auth.AreaAdminHome), cfg.Home.Landing)
	app.Get("/agent", auth.RequireArea(auth.AreaAgentHome), cfg.Home.Landing)
	app.Get("/user", auth.RequireArea(auth.AreaUserHome), cfg.Home.Landing)

	properties := app.Group("/properties", auth.RequireArea(auth.AreaProperties))
	properties.Get("/", cfg.Properties.List)
	properties.Get("/:id", cfg.Properties.Get)
	properties.Post("/", cfg.Properties.Create)
	properties.Put("/:id", cfg.Properties.Update)
	properties.Delete("/:id", cfg.Properties.Delete)

	appointments := app.Group("/appointments", auth.RequireArea(auth.AreaAppointments))
	appointments.Get("/", cfg.Appointments.List)
	appointments.Post("/", cfg.Appointments.Create)

	requests := app.Group("/requests", auth.RequireArea(auth.AreaRequests))
	requests.Get("/", cfg.Requests.List)
	requests.Post("/", cfg.Requests.Submit)
	requests.Get("/:id", cfg.Requests.Get)
	requests.Get("/:id/history", cfg.Requests.History)
	requests.Post("/:id/decision", auth.RequireArea(auth.AreaRequestDecisions), cfg.Requests.Decide)

	app.Get("/users", auth.RequireArea(auth.AreaUserDirectory), cfg.Users.ListUsers)
	app.Get("/agents", auth.RequireArea(auth.AreaAgentDirectory), cfg.Users.ListAgents)
}
