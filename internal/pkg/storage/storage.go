package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when no object exists at the path.
var ErrNotFound = errors.New("object not found")

// Storage defines the object storage used for listing images.
type Storage interface {
	// Save writes content under the relative path, replacing any existing object.
	Save(ctx context.Context, path string, content io.Reader, contentType string) error

	// Get opens the object at path. The caller closes the reader.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the object at path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL clients use to fetch the object.
	URL(path string) string
}
