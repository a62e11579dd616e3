package storage

import (
	"context"
	"io"
	"time"
)

// Storage defines the interface for media blob storage.
// Tweets reference blobs purely by key; URLs are resolved at render time.
type Storage interface {
	// Write stores content from the reader with the given key.
	// The size parameter is the expected content size (-1 if unknown).
	// The contentType parameter specifies the MIME type of the content.
	Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Read retrieves content for the given key.
	// The caller is responsible for closing the returned ReadCloser.
	Read(ctx context.Context, key string) (io.ReadCloser, error)

	// GetURL returns a URL for accessing the content.
	// For local storage, this returns a path served by the HTTP layer.
	// For S3, this returns a presigned URL valid for the specified duration.
	GetURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
