package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
	"github.com/0ShNa0/ThriftAlley/internal/middleware"
)

// UserHandler serves account registration and session endpoints.
type UserHandler struct {
	users    domain.UserService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users domain.UserService, validate *validator.Validate, logger *slog.Logger) *UserHandler {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{users: users, validate: validate, logger: logger}
}

type registerRequest struct {
	FullName string `json:"fullName" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, FullName: u.FullName, Email: u.Email}
}

// Register handles POST /api/v1/users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, domain.Errorf(domain.EINVALID, "UserHandler.Register", "Full name, valid email and a password of at least 8 characters are required"))
		return
	}

	user, err := h.users.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": newUserResponse(user)})
}

// Login handles POST /api/v1/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, domain.Errorf(domain.EINVALID, "UserHandler.Login", "Email and password are required"))
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  newUserResponse(user),
		"token": token,
	})
}

// Logout handles POST /api/v1/users/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionToken(r)

	if err := h.users.Logout(r.Context(), token); err != nil {
		writeError(w, r, err)
		return
	}

	// Expire the session cookie
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{"message": "Logged out"})
}
