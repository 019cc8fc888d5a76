package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobpulse/backend/api/http/handlers"
)

// Register wires all HTTP routes onto the given Fiber app.
func Register(app *fiber.App, health *handlers.HealthHandler, jobs *handlers.JobHandler, searchH *handlers.SearchHandler, recs *handlers.RecommendationHandler, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	// Public search and job detail (detail tracks a view)
	jg := v1.Group("/jobs")
	jg.Get("/search", searchH.Search)
	jg.Get("/:id", jobs.Get)

	// Authenticated: the engine consumes an identity, it never issues one
	jg.Post("/:id/apply", authMW, jobs.Apply)
	jg.Post("/:id/match", authMW, jobs.Match)
	jg.Get("/:id/candidates", authMW, recs.Candidates)

	v1.Get("/recommendations/jobs", authMW, recs.Jobs)
	v1.Get("/employers/:id/stats", authMW, jobs.EmployerStats)
}
