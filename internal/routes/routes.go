package routes

import (
	"github.com/go-chi/chi/v5"

	"pulse-backend/internal/handlers"
)

// SetupRoutes registers all HTTP routes.
func SetupRoutes(
	r *chi.Mux,
	feedback *handlers.FeedbackHandler,
	image *handlers.ImageHandler,
	dashboard *handlers.DashboardHandler,
	probe *handlers.ProbeHandler,
) {
	// Health check
	r.Get("/status", handlers.Status)

	// Connectivity probes
	r.Get("/test/db", probe.TestDB)
	r.Get("/test/storage", probe.TestStorage)

	// Ingestion entry point
	r.Post("/api/feedback", feedback.Submit)

	// Attachment retrieval (keys contain slashes, hence the wildcard)
	r.Get("/api/image/*", image.Get)

	// Dashboard
	r.Get("/", dashboard.Index)
}
