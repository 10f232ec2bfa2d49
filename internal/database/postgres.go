package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens the PostgreSQL connection pool and initializes tables.
func ConnectPostgres(postgresURI string) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("✅ Connected to PostgreSQL")

	if err = InitTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// InitTables creates the feedback table and its indexes if they don't exist.
func InitTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS feedback (
			id SERIAL PRIMARY KEY,
			source TEXT NOT NULL,
			content TEXT NOT NULL,
			sentiment TEXT NOT NULL,
			urgency INTEGER NOT NULL,
			image_key TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Dashboard lists by urgency first, recency second
		`CREATE INDEX IF NOT EXISTS idx_feedback_urgency_created_at ON feedback(urgency DESC, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON feedback(created_at)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}
