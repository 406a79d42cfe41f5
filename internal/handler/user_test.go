package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
	"github.com/0ShNa0/ThriftAlley/internal/handler"
	"github.com/0ShNa0/ThriftAlley/internal/middleware"
)

// mockUserService is a function-field mock of domain.UserService.
type mockUserService struct {
	RegisterFn              func(ctx context.Context, fullName, email, password string) (*domain.User, error)
	LoginFn                 func(ctx context.Context, email, password string) (*domain.User, string, error)
	LogoutFn                func(ctx context.Context, token string) error
	GetUserBySessionTokenFn func(ctx context.Context, token string) (*domain.User, error)
}

func (m *mockUserService) Register(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	return m.RegisterFn(ctx, fullName, email, password)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return m.LoginFn(ctx, email, password)
}

func (m *mockUserService) Logout(ctx context.Context, token string) error {
	return m.LogoutFn(ctx, token)
}

func (m *mockUserService) GetUserBySessionToken(ctx context.Context, token string) (*domain.User, error) {
	return m.GetUserBySessionTokenFn(ctx, token)
}

var _ domain.UserService = (*mockUserService)(nil)

func TestUserHandler_Register(t *testing.T) {
	svc := &mockUserService{
		RegisterFn: func(ctx context.Context, fullName, email, password string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), FullName: fullName, Email: email}, nil
		},
	}
	h := handler.NewUserHandler(svc, nil, nil)

	body := `{"fullName":"Asha Rao","email":"asha@example.com","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "asha@example.com")
	// The password never echoes back
	assert.NotContains(t, w.Body.String(), "correct-horse")
}

func TestUserHandler_Register_Validation(t *testing.T) {
	h := handler.NewUserHandler(&mockUserService{}, nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"asha@example.com","password":"correct-horse"}`},
		{"bad email", `{"fullName":"Asha","email":"nope","password":"correct-horse"}`},
		{"short password", `{"fullName":"Asha","email":"asha@example.com","password":"short"}`},
		{"malformed body", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.Register(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUserHandler_Register_Conflict(t *testing.T) {
	svc := &mockUserService{
		RegisterFn: func(ctx context.Context, fullName, email, password string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := handler.NewUserHandler(svc, nil, nil)

	body := `{"fullName":"Asha Rao","email":"asha@example.com","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Register(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_Login_SetsSessionCookie(t *testing.T) {
	svc := &mockUserService{
		LoginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return &domain.User{ID: uuid.New(), Email: email}, "session-token-123", nil
		},
	}
	h := handler.NewUserHandler(svc, nil, nil)

	body := `{"email":"asha@example.com","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "session-token-123", resp.Token)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	found := false
	for _, c := range cookies {
		if c.Name == middleware.SessionCookieName {
			found = true
			assert.Equal(t, "session-token-123", c.Value)
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "session cookie not set")
}

func TestUserHandler_Login_BadCredentials(t *testing.T) {
	svc := &mockUserService{
		LoginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	h := handler.NewUserHandler(svc, nil, nil)

	body := `{"email":"asha@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_Logout_ClearsCookie(t *testing.T) {
	var revoked string
	svc := &mockUserService{
		LogoutFn: func(ctx context.Context, token string) error {
			revoked = token
			return nil
		},
	}
	h := handler.NewUserHandler(svc, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
	req.Header.Set("Authorization", "Bearer session-token-123")
	w := httptest.NewRecorder()

	h.Logout(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "session-token-123", revoked)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	for _, c := range cookies {
		if c.Name == middleware.SessionCookieName {
			assert.Less(t, c.MaxAge, 0)
		}
	}
}
