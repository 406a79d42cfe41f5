package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
	"github.com/0ShNa0/ThriftAlley/internal/memory"
	"github.com/0ShNa0/ThriftAlley/internal/service"
)

func newUserService() (*service.UserService, *memory.UserStore, *memory.SessionStore) {
	users := memory.NewUserStore()
	sessions := memory.NewSessionStore()
	return service.NewUserService(users, sessions, nil), users, sessions
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService()

	user, err := svc.Register(ctx, "  Asha Rao  ", " Asha@Example.com ", "correct-horse")
	require.NoError(t, err)

	// Input is normalized
	assert.Equal(t, "Asha Rao", user.FullName)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService()

	tests := []struct {
		name     string
		fullName string
		email    string
		password string
	}{
		{"missing name", "", "asha@example.com", "correct-horse"},
		{"missing email", "Asha Rao", "", "correct-horse"},
		{"malformed email", "Asha Rao", "not-an-email", "correct-horse"},
		{"short password", "Asha Rao", "asha@example.com", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.fullName, tt.email, tt.password)
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService()

	_, err := svc.Register(ctx, "Asha Rao", "asha@example.com", "correct-horse")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Another Asha", "ASHA@example.com", "battery-staple")
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLoginAndSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService()

	registered, err := svc.Register(ctx, "Asha Rao", "asha@example.com", "correct-horse")
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, "asha@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	// Token resolves back to the user
	resolved, err := svc.GetUserBySessionToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resolved.ID)

	// Logout revokes it
	require.NoError(t, svc.Logout(ctx, token))
	_, err = svc.GetUserBySessionToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService()

	_, err := svc.Register(ctx, "Asha Rao", "asha@example.com", "correct-horse")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "asha@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "unknown@example.com", "correct-horse")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogout_UnknownTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUserService()

	assert.NoError(t, svc.Logout(ctx, ""))
	assert.NoError(t, svc.Logout(ctx, "never-issued"))
}

func TestGetUserBySessionToken_Expired(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions := newUserService()

	registered, err := svc.Register(ctx, "Asha Rao", "asha@example.com", "correct-horse")
	require.NoError(t, err)

	expired := &domain.Session{
		Token:     "expired-token",
		UserID:    registered.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, sessions.Create(ctx, expired))

	_, err = svc.GetUserBySessionToken(ctx, "expired-token")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// The dead session was cleaned up
	_, err = sessions.GetByToken(ctx, "expired-token")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
