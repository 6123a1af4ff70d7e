package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/guest-service/internal/api/http/handlers"
	"github.com/spec-kit/guest-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeesHandler
	Requests       *handlers.RequestsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/register", cfg.Auth.Register)
	api.Post("/login", cfg.Auth.Login)
	api.Post("/token/refresh", cfg.Auth.Refresh)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/logout", cfg.Auth.Logout)
	protected.Post("/requests", cfg.Requests.Create)
	protected.Get("/requests", cfg.Requests.List)
	protected.Get("/employees", cfg.Employees.List)
	protected.Patch("/requests/:id", cfg.Requests.Update)

	// Support lookups by arbitrary user id stay employee-only.
	employeeOnly := protected.Group("", auth.RequireEmployee())
	employeeOnly.Post("/requests/by-guest", cfg.Requests.ListByGuest)
	employeeOnly.Post("/requests/by-employee", cfg.Requests.ListByEmployee)
}
