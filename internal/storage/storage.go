package storage

import (
	"context"
	"io"
)

// Storage defines the interface for product image storage.
// Implementations can use the local filesystem, S3, or any other backend.
type Storage interface {
	// Put stores a file and returns its URL for retrieval.
	// The key should be a unique identifier (e.g., "products/uuid/front.jpg").
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	// Get retrieves a file by its key.
	// Returns an io.ReadCloser that must be closed by the caller.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file by its key.
	// Returns nil if the file doesn't exist (idempotent).
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for accessing a stored file.
	URL(key string) string

	// Exists checks if a file exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}

// Config selects and configures a storage backend.
type Config struct {
	Provider  string // "local" or "s3"
	LocalPath string
	LocalURL  string
	S3Bucket  string
	S3Region  string
}

// NewStorage creates a Storage implementation based on configuration.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStorage(cfg.LocalPath, cfg.LocalURL)
	case "s3":
		return NewS3Storage(cfg.S3Bucket, cfg.S3Region)
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
