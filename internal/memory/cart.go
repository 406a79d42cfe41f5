package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
)

// CartStore is an in-memory domain.CartStore with the same optimistic
// version semantics as the postgres store. Lookups on absent ids return an
// explicit not-found; a zero-item cart is never stored.
type CartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]domain.Cart
}

var _ domain.CartStore = (*CartStore)(nil)

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[uuid.UUID]domain.Cart)}
}

func (s *CartStore) Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[id]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return cloneCart(c), nil
}

func (s *CartStore) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.carts {
		if c.UserID == userID {
			return cloneCart(c), nil
		}
	}
	return nil, domain.ErrCartNotFound
}

func (s *CartStore) Save(ctx context.Context, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.carts[cart.ID]
	if cart.Version == 0 {
		if ok {
			return domain.ErrCartConflict
		}
	} else {
		if !ok {
			return domain.ErrCartNotFound
		}
		if existing.Version != cart.Version {
			return domain.ErrCartConflict
		}
	}

	cart.Version++
	s.carts[cart.ID] = *cloneCart(*cart)
	return nil
}

func (s *CartStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[id]; !ok {
		return domain.ErrCartNotFound
	}
	delete(s.carts, id)
	return nil
}

func cloneCart(c domain.Cart) *domain.Cart {
	c.Items = append([]domain.CartLineItem(nil), c.Items...)
	return &c
}
