package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pulse-backend/internal/pipeline"
	"pulse-backend/internal/storage"
)

// ImageHandler serves stored feedback attachments.
type ImageHandler struct {
	store storage.ObjectStore
}

func NewImageHandler(store storage.ObjectStore) *ImageHandler {
	return &ImageHandler{store: store}
}

// Get handles GET /api/image/*. The key must live under the attachment
// namespace; anything else is rejected before the store is consulted, so the
// endpoint cannot be used to read unrelated objects.
func (h *ImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")

	if !strings.HasPrefix(key, pipeline.KeyPrefix) {
		writeError(w, http.StatusForbidden, "Access denied", errors.New("invalid attachment key"))
		return
	}

	if h.store == nil {
		writeError(w, http.StatusInternalServerError, "Image storage unavailable", errors.New("object store not configured"))
		return
	}

	body, err := h.store.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Image not found", err)
			return
		}
		log.Printf("Attachment fetch failed for %q: %v", key, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch image", err)
		return
	}
	defer body.Close()

	// Attachments are immutable once written, so long-lived caching is safe.
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	if _, err := io.Copy(w, body); err != nil {
		log.Printf("Streaming attachment %q failed: %v", key, err)
	}
}
