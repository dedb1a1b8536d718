package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fieldops-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Jobs      *handlers.JobsHandler
	Alerts    *handlers.AlertsHandler
	Sites     *handlers.SitesHandler
	Directory *handlers.DirectoryHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	jobs := app.Group("/jobs")
	jobs.Get("/", cfg.Jobs.ListJobs)
	jobs.Post("/", cfg.Jobs.CreateJob)
	jobs.Get("/:id", cfg.Jobs.GetJob)
	jobs.Put("/:id", cfg.Jobs.UpdateJob)
	jobs.Post("/:id/accept", cfg.Jobs.AcceptJob)
	jobs.Post("/:id/onsite", cfg.Jobs.OnsiteJob)
	jobs.Post("/:id/complete", cfg.Jobs.CompleteJob)

	alerts := app.Group("/alerts")
	alerts.Get("/", cfg.Alerts.ListAlerts)
	alerts.Post("/", cfg.Alerts.CreateAlert)
	alerts.Get("/history", cfg.Alerts.History)
	alerts.Get("/manual", cfg.Alerts.ListManualAlerts)
	alerts.Post("/:id/resolve", cfg.Alerts.ResolveAlert)

	sites := app.Group("/sites")
	sites.Get("/", cfg.Sites.ListSites)
	sites.Get("/:site", cfg.Sites.GetSite)

	app.Get("/engineers", cfg.Directory.ListEngineers)
	app.Get("/engineers/:id", cfg.Directory.GetEngineer)
	app.Get("/customers", cfg.Directory.ListCustomers)
}
