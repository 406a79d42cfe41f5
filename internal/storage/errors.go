package storage

import "fmt"

// ErrUnknownProvider indicates an unrecognized storage provider name.
func ErrUnknownProvider(provider string) error {
	return fmt.Errorf("unknown storage provider: %q (expected \"local\" or \"s3\")", provider)
}

// ErrFileNotFound indicates the requested file does not exist.
func ErrFileNotFound(key string) error {
	return fmt.Errorf("file not found: %s", key)
}
