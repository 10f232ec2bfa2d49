// Package pipeline orchestrates feedback ingestion: validation, attachment
// storage, classification and persistence, with the failure-coupling policy
// between them.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"pulse-backend/internal/models"
	"pulse-backend/internal/storage"
)

// KeyPrefix namespaces every attachment key. The retrieval endpoint rejects
// keys outside this namespace before touching the store.
const KeyPrefix = "feedback/"

var (
	// ErrValidation marks a rejected submission (missing required field).
	// No side effects have occurred when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrStorage marks an attachment write failure. Nothing was persisted.
	ErrStorage = errors.New("attachment storage failed")

	// ErrClassification marks an inference failure. A stored attachment is
	// not rolled back; the orphan is an accepted trade-off.
	ErrClassification = errors.New("classification failed")

	// ErrPersistence marks a record insert failure, also without attachment rollback.
	ErrPersistence = errors.New("record persistence failed")
)

// Classifier derives a classification from feedback text.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Classification, error)
}

// RecordStore persists and lists classified feedback records.
type RecordStore interface {
	Insert(ctx context.Context, rec *models.FeedbackRecord) error
	ListForDashboard(ctx context.Context) ([]models.FeedbackRecord, error)
}

// Attachment is an optional binary asset accompanying a submission.
type Attachment struct {
	Filename string
	Reader   io.Reader
	Size     int64
}

// Submission is one raw feedback submission.
type Submission struct {
	Source     string
	Content    string
	Attachment *Attachment // nil when none supplied
}

// Pipeline runs each submission as an independent unit of work against the
// three injected collaborators. It holds no mutable state of its own.
type Pipeline struct {
	store   storage.ObjectStore
	engine  Classifier
	records RecordStore
}

func New(store storage.ObjectStore, engine Classifier, records RecordStore) *Pipeline {
	return &Pipeline{store: store, engine: engine, records: records}
}

// Submit validates sub, stores its attachment if any, classifies the content
// and persists the composed record. Each collaborator is called at most once;
// surfacing the failure to the caller is the retry mechanism.
func (p *Pipeline) Submit(ctx context.Context, sub Submission) (*models.FeedbackRecord, error) {
	if sub.Source == "" {
		return nil, fmt.Errorf("%w: source is required", ErrValidation)
	}
	if sub.Content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	// Zero-byte attachments are treated as absent, not as an error.
	var imageKey *string
	if sub.Attachment != nil && sub.Attachment.Size > 0 {
		if p.store == nil {
			return nil, fmt.Errorf("%w: object store not configured", ErrStorage)
		}
		key := attachmentKey(sub.Attachment.Filename)
		if err := p.store.Put(ctx, key, sub.Attachment.Reader, sub.Attachment.Size); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		imageKey = &key
	}

	classification, err := p.engine.Classify(ctx, sub.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassification, err)
	}

	record := &models.FeedbackRecord{
		Source:    sub.Source,
		Content:   sub.Content,
		Sentiment: classification.Sentiment,
		Urgency:   classification.Urgency,
		ImageKey:  imageKey,
	}
	if err := p.records.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return record, nil
}

// attachmentKey builds a collision-resistant key under the fixed prefix,
// keeping the original filename for readability.
func attachmentKey(filename string) string {
	name := filepath.Base(filename)
	if name == "." || name == "/" || name == "" {
		name = "attachment"
	}
	return KeyPrefix + uuid.NewString() + "-" + name
}
