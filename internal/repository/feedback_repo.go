package repository

import (
	"context"
	"database/sql"

	"pulse-backend/internal/models"
)

// FeedbackRepo persists feedback records in PostgreSQL.
type FeedbackRepo struct {
	db *sql.DB
}

func NewFeedbackRepo(db *sql.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// Insert stores rec and fills in the store-assigned id and timestamp.
func (r *FeedbackRepo) Insert(ctx context.Context, rec *models.FeedbackRecord) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO feedback (source, content, sentiment, urgency, image_key)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		rec.Source, rec.Content, rec.Sentiment, rec.Urgency, rec.ImageKey,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// ListForDashboard returns all records ordered by urgency descending, then
// recency (id breaks timestamp ties).
func (r *FeedbackRepo) ListForDashboard(ctx context.Context) ([]models.FeedbackRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source, content, sentiment, urgency, image_key, created_at
		 FROM feedback
		 ORDER BY urgency DESC, created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.FeedbackRecord
	for rows.Next() {
		var rec models.FeedbackRecord
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Content, &rec.Sentiment, &rec.Urgency, &rec.ImageKey, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
