package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/0ShNa0/ThriftAlley/internal/auth"
	"github.com/0ShNa0/ThriftAlley/internal/domain"
)

// SessionTTL is how long a login session stays valid.
const SessionTTL = 30 * 24 * time.Hour

// UserService implements domain.UserService.
type UserService struct {
	users    domain.UserStore
	sessions domain.SessionStore
	logger   *slog.Logger
}

// Compile-time check that UserService implements domain.UserService.
var _ domain.UserService = (*UserService)(nil)

// NewUserService creates a user service.
func NewUserService(users domain.UserStore, sessions domain.SessionStore, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates a new user account.
func (s *UserService) Register(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	const op = "user.register"

	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	if fullName == "" {
		return nil, domain.Invalid(op, "full name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Invalid(op, "a valid email is required")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.Internal(err, op, "failed to check existing user")
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) || errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, domain.Invalid(op, "password must be between 8 and 72 characters")
		}
		return nil, domain.Internal(err, op, "failed to hash password")
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", email)

	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	const op = "user.login"

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", domain.Invalid(op, "email is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", domain.Internal(err, op, "failed to verify password")
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, "", domain.Internal(err, op, "failed to generate session token")
	}

	now := time.Now()
	session := &domain.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: now.Add(SessionTTL),
		CreatedAt: now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout revokes a session token. Revoking an unknown token is a no-op.
func (s *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// GetUserBySessionToken resolves a session token to its user.
func (s *UserService) GetUserBySessionToken(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now()) {
		// Best-effort cleanup of the dead session.
		_ = s.sessions.Delete(ctx, token)
		return nil, domain.ErrSessionNotFound
	}

	return s.users.Get(ctx, session.UserID)
}
