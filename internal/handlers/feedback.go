package handlers

import (
	"errors"
	"log"
	"net/http"

	"pulse-backend/internal/pipeline"
	"pulse-backend/internal/services"
)

// maxAttachmentSize caps the multipart form held in memory (10MB).
const maxAttachmentSize = 10 << 20

// FeedbackHandler handles feedback submissions through the ingestion pipeline.
type FeedbackHandler struct {
	pipeline *pipeline.Pipeline
	cache    *services.DashboardCache
}

func NewFeedbackHandler(pl *pipeline.Pipeline, cache *services.DashboardCache) *FeedbackHandler {
	return &FeedbackHandler{pipeline: pl, cache: cache}
}

// Submit handles POST /api/feedback: multipart form with fields source,
// content and an optional image part.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	sub := pipeline.Submission{
		Source:  r.FormValue("source"),
		Content: r.FormValue("content"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		if header.Size == 0 {
			// Zero-byte uploads are treated as no attachment. Logged because
			// it usually means a client bug rather than intent.
			log.Printf("Ignoring zero-byte attachment %q from source %q", header.Filename, sub.Source)
		} else {
			sub.Attachment = &pipeline.Attachment{
				Filename: header.Filename,
				Reader:   file,
				Size:     header.Size,
			}
		}
	case errors.Is(err, http.ErrMissingFile):
		// no attachment supplied
	default:
		writeError(w, http.StatusBadRequest, "Invalid image part", err)
		return
	}

	record, err := h.pipeline.Submit(r.Context(), sub)
	if err != nil {
		status, message := submissionFailure(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Feedback submission failed: %v", err)
		}
		writeError(w, status, message, err)
		return
	}

	h.cache.Invalidate(r.Context())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   record,
	})
}

// submissionFailure maps a pipeline error to an HTTP status and message.
func submissionFailure(err error) (int, string) {
	switch {
	case errors.Is(err, pipeline.ErrValidation):
		return http.StatusBadRequest, "Source and content are required"
	case errors.Is(err, pipeline.ErrStorage):
		return http.StatusInternalServerError, "Failed to store image"
	case errors.Is(err, pipeline.ErrClassification):
		return http.StatusInternalServerError, "Failed to classify feedback"
	case errors.Is(err, pipeline.ErrPersistence):
		return http.StatusInternalServerError, "Failed to save feedback"
	default:
		return http.StatusInternalServerError, "Failed to submit feedback"
	}
}
