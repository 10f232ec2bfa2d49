package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
)

func TestImageRejectsKeyOutsideNamespace(t *testing.T) {
	app := newTestApp(t)

	// The object exists, but its key is outside the attachment namespace.
	// The prefix check must reject it without consulting the store.
	key := "test-1700000000.txt"
	if err := app.store.Put(context.Background(), key, bytes.NewReader([]byte("secret")), 6); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	rec := app.do(http.MethodGet, "/api/image/"+key, nil, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec.Body.Bytes())
	if env.Status != "error" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestImageNotFound(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/image/feedback/does-not-exist.png", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d: %s", rec.Code, rec.Body.String())
	}
}
