package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
)

func newCart(userID uuid.UUID) *domain.Cart {
	return &domain.Cart{
		ID:     uuid.New(),
		UserID: userID,
		Items: []domain.CartLineItem{
			{ProductID: uuid.New(), Quantity: 1, UnitPriceCents: 100},
		},
		TotalAmountCents: 100,
	}
}

func TestCartStore_SaveInsertsAtVersionZero(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore()
	cart := newCart(uuid.New())

	require.NoError(t, store.Save(ctx, cart))
	assert.Equal(t, int64(1), cart.Version)

	loaded, err := store.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.TotalAmountCents, loaded.TotalAmountCents)
	assert.Equal(t, int64(1), loaded.Version)
}

func TestCartStore_SaveRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore()
	cart := newCart(uuid.New())

	require.NoError(t, store.Save(ctx, cart))

	// Two readers load the same version
	a, err := store.Get(ctx, cart.ID)
	require.NoError(t, err)
	b, err := store.Get(ctx, cart.ID)
	require.NoError(t, err)

	a.TotalAmountCents = 200
	require.NoError(t, store.Save(ctx, a))

	// The second writer's version is now stale
	b.TotalAmountCents = 300
	err = store.Save(ctx, b)
	assert.ErrorIs(t, err, domain.ErrCartConflict)

	loaded, err := store.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), loaded.TotalAmountCents)
}

func TestCartStore_GetByUser(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore()
	userID := uuid.New()
	cart := newCart(userID)

	_, err := store.GetByUser(ctx, userID)
	assert.ErrorIs(t, err, domain.ErrCartNotFound)

	require.NoError(t, store.Save(ctx, cart))

	loaded, err := store.GetByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, loaded.ID)
}

func TestCartStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore()
	cart := newCart(uuid.New())

	assert.ErrorIs(t, store.Delete(ctx, cart.ID), domain.ErrCartNotFound)

	require.NoError(t, store.Save(ctx, cart))
	require.NoError(t, store.Delete(ctx, cart.ID))

	_, err := store.Get(ctx, cart.ID)
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}
