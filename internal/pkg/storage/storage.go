// Package storage abstracts file persistence behind FileStorage so the
// services never touch a filesystem or object store directly.
package storage

import (
	"context"
	"io"
	"time"
)

type FileStorage interface {
	// Upload stores the file under path and returns the stored key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download opens the stored file for reading.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the file; deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// GetURL returns a URL the file can be fetched from. Expiry only
	// matters for backends that sign URLs.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists reports whether a file is stored under path.
	Exists(ctx context.Context, path string) (bool, error)
}

type UploadOptions struct {
	ContentType string
	MaxSize     int64
	AllowedExts []string
}
