package handlers

import (
	"net/http"
	"time"
)

// Status handles GET /status, the liveness probe.
func Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"message":   "Pulse application is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
