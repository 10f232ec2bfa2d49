package handlers

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pulse-backend/internal/models"
	"pulse-backend/internal/storage"
)

// ProbeHandler exposes connectivity test endpoints for the external
// collaborators. These are plain probes with no sequencing logic.
type ProbeHandler struct {
	db    *sql.DB
	store storage.ObjectStore
}

func NewProbeHandler(db *sql.DB, store storage.ObjectStore) *ProbeHandler {
	return &ProbeHandler{db: db, store: store}
}

// TestDB handles GET /test/db: inserts a test record and reads back the five
// most recent rows.
func (h *ProbeHandler) TestDB(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := h.db.ExecContext(ctx,
		`INSERT INTO feedback (source, content, sentiment, urgency) VALUES ($1, $2, $3, $4)`,
		"test", "Test feedback entry", models.SentimentNeutral, models.UrgencyMax)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database connection failed", err)
		return
	}

	rows, err := h.db.QueryContext(ctx,
		`SELECT id, source, content, sentiment, urgency, image_key, created_at
		 FROM feedback ORDER BY id DESC LIMIT 5`)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database connection failed", err)
		return
	}
	defer rows.Close()

	var records []models.FeedbackRecord
	for rows.Next() {
		var rec models.FeedbackRecord
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Content, &rec.Sentiment, &rec.Urgency, &rec.ImageKey, &rec.CreatedAt); err != nil {
			writeError(w, http.StatusInternalServerError, "Database connection failed", err)
			return
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Database connection failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"message":       "Database connection successful",
		"recordCount":   len(records),
		"sampleRecords": records,
	})
}

// TestStorage handles GET /test/storage: writes a small text object and reads
// it back. The test key lives outside the attachment namespace on purpose, so
// the image endpoint will never serve it.
func (h *ProbeHandler) TestStorage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.store == nil {
		writeError(w, http.StatusInternalServerError, "Storage connection failed", errors.New("object store not configured"))
		return
	}

	testKey := fmt.Sprintf("test-%d.txt", time.Now().UnixMilli())
	testContent := "Hello from Pulse! This is a test file."

	if err := h.store.Put(ctx, testKey, bytes.NewReader([]byte(testContent)), int64(len(testContent))); err != nil {
		writeError(w, http.StatusInternalServerError, "Storage connection failed", err)
		return
	}

	body, err := h.store.Get(ctx, testKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Storage connection failed", err)
		return
	}
	defer body.Close()

	retrieved, err := io.ReadAll(body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Storage connection failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "ok",
		"message":          "Storage connection successful",
		"testKey":          testKey,
		"uploadedContent":  testContent,
		"retrievedContent": string(retrieved),
		"match":            testContent == string(retrieved),
	})
}
