package service

import (
	"context"
	"io"
)

// FileStorage defines the interface for storing user-uploaded files.
// Implementations sit on top of a blob bucket (local filesystem in
// development, GCS in production).
type FileStorage interface {
	// Upload writes the object at key, replacing any previous content,
	// and returns the public URL it is served from.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes the object at key. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}
