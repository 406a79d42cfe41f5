package storage

import (
	"context"
	"fmt"
	"io"
)

// S3Storage implements Storage using AWS S3 or S3-compatible storage.
// Placeholder for larger deployments; full implementation will use the
// AWS SDK for Go v2.
type S3Storage struct {
	bucket string
	region string
}

// NewS3Storage creates a new S3 storage implementation.
func NewS3Storage(bucket, region string) (*S3Storage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("S3 bucket name required")
	}

	return &S3Storage{
		bucket: bucket,
		region: region,
	}, nil
}

// Put stores a file in S3.
func (s *S3Storage) Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	return "", fmt.Errorf("s3 storage not implemented")
}

// Get retrieves a file from S3.
func (s *S3Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("s3 storage not implemented")
}

// Delete removes a file from S3.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	return fmt.Errorf("s3 storage not implemented")
}

// URL returns the public URL for accessing a file in S3.
func (s *S3Storage) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// Exists checks if a file exists in S3.
func (s *S3Storage) Exists(ctx context.Context, key string) (bool, error) {
	return false, fmt.Errorf("s3 storage not implemented")
}
