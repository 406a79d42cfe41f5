// Package memory provides in-memory store implementations guarded by
// mutexes. They back the test suite and the STORE=memory development mode.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
)

// UserStore is an in-memory domain.UserStore.
type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
}

var _ domain.UserStore = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]domain.User)}
}

func (s *UserStore) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	s.users[user.ID] = *cloneUser(*user)
	return nil
}

func (s *UserStore) SetCartRef(ctx context.Context, userID uuid.UUID, cartID *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}

	if cartID == nil {
		u.CartID = nil
	} else {
		id := *cartID
		u.CartID = &id
	}
	s.users[userID] = u
	return nil
}

func cloneUser(u domain.User) *domain.User {
	if u.CartID != nil {
		id := *u.CartID
		u.CartID = &id
	}
	return &u
}

// SessionStore is an in-memory domain.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

var _ domain.SessionStore = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

func (s *SessionStore) Create(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.Token] = *session
	return nil
}

func (s *SessionStore) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}
