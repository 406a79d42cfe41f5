package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
)

// ProductStore is an in-memory domain.ProductStore.
type ProductStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

var _ domain.ProductStore = (*ProductStore)(nil)

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[uuid.UUID]domain.Product)}
}

func (s *ProductStore) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (s *ProductStore) GetBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[uuid.UUID]*domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = cloneProduct(p)
		}
	}
	return out, nil
}

func (s *ProductStore) List(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *cloneProduct(p))
	}
	sortProducts(out)
	return out, nil
}

func (s *ProductStore) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Product
	for _, p := range s.products {
		if p.SellerID == sellerID {
			out = append(out, *cloneProduct(p))
		}
	}
	sortProducts(out)
	return out, nil
}

func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[product.ID] = *cloneProduct(*product)
	return nil
}

func (s *ProductStore) Update(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	s.products[product.ID] = *cloneProduct(*product)
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func cloneProduct(p domain.Product) *domain.Product {
	p.Images = append([]string(nil), p.Images...)
	return &p
}

func sortProducts(products []domain.Product) {
	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID.String() < products[j].ID.String()
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
}
