package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/catalyst-itsm/intake-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Tickets  *handlers.TicketsHandler
	Tenants  *handlers.TenantsHandler
	Webhooks *handlers.WebhooksHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/readyz", cfg.Health.Readyz)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/tickets", cfg.Tickets.CreateTicket)
	app.Get("/tickets", cfg.Tickets.ListTickets)
	app.Get("/tickets/:id", cfg.Tickets.GetTicket)
	app.Post("/tickets/:id/comments", cfg.Tickets.AddComment)
	app.Patch("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	app.Patch("/tickets/:id/priority", cfg.Tickets.UpdatePriority)

	app.Post("/tenants", cfg.Tenants.CreateTenant)

	app.Post("/billing/webhooks", cfg.Webhooks.HandleBillingWebhook)
}
