package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/http/handlers"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	AdminTickets   *handlers.AdminTicketsHandler
	Assets         *handlers.AssetsHandler
	Notifications  *handlers.NotificationsHandler
	MasterData     *handlers.MasterDataHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	tickets := protected.Group("/tickets")
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/branch", cfg.Tickets.ListBranchTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/cancel", cfg.Tickets.CancelTicket)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Get("/:id/comments", cfg.Tickets.ListComments)

	protected.Get("/branches", cfg.MasterData.ListBranches)
	protected.Get("/catalog/categories", cfg.MasterData.ListCategories)
	protected.Get("/catalog/categories/:id/types", cfg.MasterData.ListTypes)

	protected.Get("/assets", cfg.Assets.ListAssets)
	protected.Get("/assets/:id", cfg.Assets.GetAsset)

	notifications := protected.Group("/notifications")
	notifications.Get("", cfg.Notifications.ListNotifications)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)
	notifications.Delete("/:id", cfg.Notifications.DeleteNotification)

	admin := protected.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	admin.Get("/tickets", cfg.AdminTickets.ListTickets)
	admin.Get("/tickets/assigned", cfg.AdminTickets.ListAssigned)
	admin.Post("/tickets/:id/start", cfg.AdminTickets.StartTicket)
	admin.Post("/tickets/:id/close", cfg.AdminTickets.CloseTicket)
	admin.Patch("/tickets/:id/status", cfg.AdminTickets.UpdateStatus)
	admin.Post("/assets", cfg.Assets.CreateAsset)
	admin.Post("/branches", cfg.MasterData.CreateBranch)
	admin.Get("/dashboard", cfg.Dashboard.Overview)
}
