package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"pulse-backend/internal/models"
	"pulse-backend/internal/storage"
)

type fakeStore struct {
	objects  map[string][]byte
	putErr   error
	putCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	f.putCalls++
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type fakeClassifier struct {
	result models.Classification
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (models.Classification, error) {
	f.calls++
	return f.result, f.err
}

type fakeRecords struct {
	inserted  []*models.FeedbackRecord
	insertErr error
	calls     int
}

func (f *fakeRecords) Insert(ctx context.Context, rec *models.FeedbackRecord) error {
	f.calls++
	if f.insertErr != nil {
		return f.insertErr
	}
	rec.ID = int64(len(f.inserted) + 1)
	rec.CreatedAt = time.Now()
	f.inserted = append(f.inserted, rec)
	return nil
}

func (f *fakeRecords) ListForDashboard(ctx context.Context) ([]models.FeedbackRecord, error) {
	var out []models.FeedbackRecord
	for _, rec := range f.inserted {
		out = append(out, *rec)
	}
	return out, nil
}

func negative5() *fakeClassifier {
	return &fakeClassifier{result: models.Classification{Sentiment: models.SentimentNegative, Urgency: 5}}
}

func TestSubmitValidationShortCircuits(t *testing.T) {
	cases := []struct {
		name string
		sub  Submission
	}{
		{"empty source", Submission{Source: "", Content: "something broke"}},
		{"empty content", Submission{Source: "api", Content: ""}},
		{"both empty", Submission{}},
	}
	for _, tc := range cases {
		store := newFakeStore()
		engine := negative5()
		records := &fakeRecords{}
		// include an attachment to prove it is never touched
		tc.sub.Attachment = &Attachment{Filename: "shot.png", Reader: strings.NewReader("png"), Size: 3}

		_, err := New(store, engine, records).Submit(context.Background(), tc.sub)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected ErrValidation got %v", tc.name, err)
		}
		if store.putCalls != 0 || engine.calls != 0 || records.calls != 0 {
			t.Fatalf("%s: expected zero collaborator calls, got store=%d classify=%d insert=%d",
				tc.name, store.putCalls, engine.calls, records.calls)
		}
	}
}

func TestSubmitNoAttachment(t *testing.T) {
	store := newFakeStore()
	records := &fakeRecords{}
	pl := New(store, negative5(), records)

	rec, err := pl.Submit(context.Background(), Submission{Source: "api", Content: "The app crashes every time I click submit!"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ImageKey != nil {
		t.Fatalf("expected nil image key, got %q", *rec.ImageKey)
	}
	if rec.Sentiment != models.SentimentNegative || rec.Urgency != 5 {
		t.Fatalf("classification not applied: %+v", rec)
	}
	if rec.ID == 0 || rec.CreatedAt.IsZero() {
		t.Fatalf("store-assigned fields missing: %+v", rec)
	}
	if store.putCalls != 0 {
		t.Fatalf("object store touched without attachment")
	}
}

func TestSubmitZeroByteAttachmentTreatedAsAbsent(t *testing.T) {
	store := newFakeStore()
	pl := New(store, negative5(), &fakeRecords{})

	rec, err := pl.Submit(context.Background(), Submission{
		Source:     "web",
		Content:    "screenshot attached",
		Attachment: &Attachment{Filename: "empty.png", Reader: strings.NewReader(""), Size: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ImageKey != nil {
		t.Fatalf("expected nil image key for zero-byte attachment, got %q", *rec.ImageKey)
	}
	if store.putCalls != 0 {
		t.Fatalf("zero-byte attachment must not be stored")
	}
}

func TestSubmitStoresAttachmentUnderNamespacedKey(t *testing.T) {
	store := newFakeStore()
	pl := New(store, negative5(), &fakeRecords{})

	rec, err := pl.Submit(context.Background(), Submission{
		Source:     "web",
		Content:    "button misaligned, see screenshot",
		Attachment: &Attachment{Filename: "shot.png", Reader: strings.NewReader("fake png bytes"), Size: 14},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ImageKey == nil {
		t.Fatal("expected image key")
	}
	key := *rec.ImageKey
	if !strings.HasPrefix(key, KeyPrefix) {
		t.Fatalf("key %q lacks prefix %q", key, KeyPrefix)
	}
	if !strings.HasSuffix(key, "-shot.png") {
		t.Fatalf("key %q lost the original filename", key)
	}
	if string(store.objects[key]) != "fake png bytes" {
		t.Fatalf("stored bytes mismatch for key %q", key)
	}
}

func TestSubmitStorageFailureAbortsBeforeClassification(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("bucket unavailable")
	engine := negative5()
	records := &fakeRecords{}

	_, err := New(store, engine, records).Submit(context.Background(), Submission{
		Source:     "web",
		Content:    "broken",
		Attachment: &Attachment{Filename: "shot.png", Reader: strings.NewReader("x"), Size: 1},
	})
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage got %v", err)
	}
	if engine.calls != 0 {
		t.Fatalf("classification must not run after storage failure")
	}
	if records.calls != 0 {
		t.Fatalf("no record may be persisted after storage failure")
	}
}

func TestSubmitNilStoreWithAttachment(t *testing.T) {
	_, err := New(nil, negative5(), &fakeRecords{}).Submit(context.Background(), Submission{
		Source:     "web",
		Content:    "broken",
		Attachment: &Attachment{Filename: "shot.png", Reader: strings.NewReader("x"), Size: 1},
	})
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage got %v", err)
	}
}

func TestSubmitClassificationFailureLeavesOrphanAttachment(t *testing.T) {
	store := newFakeStore()
	engine := &fakeClassifier{err: errors.New("model returned garbage")}
	records := &fakeRecords{}

	_, err := New(store, engine, records).Submit(context.Background(), Submission{
		Source:     "web",
		Content:    "broken",
		Attachment: &Attachment{Filename: "shot.png", Reader: strings.NewReader("x"), Size: 1},
	})
	if !errors.Is(err, ErrClassification) {
		t.Fatalf("expected ErrClassification got %v", err)
	}
	// Attachment was already durable when classification failed; it stays.
	if len(store.objects) != 1 {
		t.Fatalf("expected 1 stored (orphan) attachment, got %d", len(store.objects))
	}
	if records.calls != 0 {
		t.Fatalf("no record may be persisted after classification failure")
	}
}

func TestSubmitPersistenceFailure(t *testing.T) {
	records := &fakeRecords{insertErr: errors.New("connection reset")}

	_, err := New(newFakeStore(), negative5(), records).Submit(context.Background(), Submission{
		Source:  "api",
		Content: "broken",
	})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence got %v", err)
	}
}
