package handlers

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"pulse-backend/internal/models"
	"pulse-backend/internal/pipeline"
	"pulse-backend/internal/services"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// DashboardHandler renders the prioritized feedback listing.
type DashboardHandler struct {
	records pipeline.RecordStore
	cache   *services.DashboardCache
}

func NewDashboardHandler(records pipeline.RecordStore, cache *services.DashboardCache) *DashboardHandler {
	return &DashboardHandler{records: records, cache: cache}
}

// Index handles GET /. Read failures degrade to a plain-text 500 rather than
// a broken partial page.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	records, hit := h.cache.Get(r.Context())
	if !hit {
		var err error
		records, err = h.records.ListForDashboard(r.Context())
		if err != nil {
			log.Printf("Dashboard listing failed: %v", err)
			http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
			return
		}
		h.cache.Set(r.Context(), records)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, struct {
		Records []models.FeedbackRecord
	}{Records: records}); err != nil {
		log.Printf("Dashboard render failed: %v", err)
	}
}
