package repository

import (
	"context"
	"io"
)

// BlobStore defines the interface for binary object storage.
// Implementations should be provided by the infrastructure layer (e.g., MinIO, S3).
type BlobStore interface {
	// Upload stores an object under key. size may be -1 when unknown.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download retrieves an object from the storage.
	// Caller is responsible for closing the returned ReadCloser.
	// Returns ErrObjectNotFound if the object is absent.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Remove deletes an object.
	// Returns ErrObjectNotFound if the object is absent; callers that
	// need idempotent deletes treat that as success.
	Remove(ctx context.Context, key string) error

	// Exists checks if an object exists in the storage.
	Exists(ctx context.Context, key string) (bool, error)

	// URL returns the retrievable location for a stored object.
	URL(key string) string
}
