package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 8

	// MaxPasswordLength is bcrypt's input limit; bcrypt silently ignores
	// bytes past 72, so longer passwords are rejected rather than truncated.
	MaxPasswordLength = 72

	hashCost = 12
)

var (
	ErrPasswordTooShort = errors.New("password is shorter than 8 characters")
	ErrPasswordTooLong  = errors.New("password is longer than 72 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

// HashPassword derives a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	switch {
	case len(password) < MinPasswordLength:
		return "", ErrPasswordTooShort
	case len(password) > MaxPasswordLength:
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a login attempt against the stored hash.
func VerifyPassword(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("verify password: %w", err)
	}
	return nil
}
