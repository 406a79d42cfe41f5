package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSessionToken generates a cryptographically secure session token.
// Uses 32 bytes of random data encoded as a base64 URL-safe string.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return base64.URLEncoding.EncodeToString(b), nil
}
