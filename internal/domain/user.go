package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// USER DOMAIN ERRORS
// =============================================================================

var (
	ErrUserNotFound       = &Error{Code: ENOTFOUND, Message: "User not found"}
	ErrUserExists         = &Error{Code: ECONFLICT, Message: "User with given email exists"}
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Invalid user credentials"}
	ErrSessionNotFound    = &Error{Code: EUNAUTHORIZED, Message: "Session not found or expired"}
)

// User is an account holder. A user may act as both buyer and seller.
// CartID is a nullable weak reference to the user's single active cart;
// it is set on the first add-to-cart and cleared when the cart empties.
type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	PasswordHash string
	CartID       *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is an opaque server-side login session.
type Session struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// UserStore persists user accounts.
type UserStore interface {
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error

	// SetCartRef points the user at a cart, or clears the reference when
	// cartID is nil.
	SetCartRef(ctx context.Context, userID uuid.UUID, cartID *uuid.UUID) error
}

// SessionStore persists login sessions.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// UserService provides account registration and session auth.
type UserService interface {
	Register(ctx context.Context, fullName, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	Logout(ctx context.Context, token string) error
	GetUserBySessionToken(ctx context.Context, token string) (*User, error)
}
