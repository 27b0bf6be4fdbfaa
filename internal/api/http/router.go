package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blood-donation-service/internal/api/http/handlers"
	"github.com/spec-kit/blood-donation-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Donors         *handlers.DonorsHandler
	Requests       *handlers.RequestsHandler
	Donations      *handlers.DonationsHandler
	Notifications  *handlers.NotificationsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	donors := api.Group("/donors")
	donors.Get("/", cfg.Donors.List)
	donors.Get("/:id", cfg.Donors.Get)

	requests := api.Group("/blood-requests")
	requests.Get("/", cfg.Requests.List)
	requests.Get("/:id", cfg.Requests.Get)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	profile := protected.Group("/profile")
	profile.Get("/", cfg.Profile.Get)
	profile.Put("/", cfg.Profile.Update)
	profile.Put("/password", cfg.Profile.ChangePassword)

	protected.Post("/donors", cfg.Donors.Create)
	protected.Put("/donors/:id", cfg.Donors.Update)
	protected.Patch("/donors/:id/availability", cfg.Donors.SetAvailability)

	protected.Post("/blood-requests", cfg.Requests.Create)
	protected.Put("/blood-requests/:id", cfg.Requests.Update)
	protected.Delete("/blood-requests/:id", cfg.Requests.Delete)

	donations := protected.Group("/donations")
	donations.Post("/", cfg.Donations.Create)
	donations.Get("/", cfg.Donations.List)

	notifications := protected.Group("/notifications")
	notifications.Get("/", cfg.Notifications.List)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)

	admin := protected.Group("/admin", auth.RequireAdmin())
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Get("/donors", cfg.Admin.ListDonors)
	admin.Get("/requests", cfg.Admin.ListRequests)
	admin.Get("/donations", cfg.Admin.ListDonations)
	admin.Get("/stats", cfg.Admin.Stats)
	admin.Get("/analytics", cfg.Admin.Analytics)
	admin.Post("/users/:id/:action", cfg.Admin.UserAction)
	admin.Post("/donors/:id/:action", cfg.Admin.DonorAction)
	admin.Post("/requests/:id/:action", cfg.Admin.RequestAction)
	admin.Post("/donations/:id/:action", cfg.Admin.DonationAction)
	admin.Post("/promote", cfg.Admin.Promote)
}
