// Package storage provides durable key/value storage for feedback attachments.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a requested object does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectStore is the capability the ingestion pipeline needs from an
// attachment store: streamed put and get by opaque key.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
