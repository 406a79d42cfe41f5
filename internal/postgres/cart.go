package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
)

// CartStore implements domain.CartStore using PostgreSQL.
//
// Save writes the cart row and its line items in one transaction with an
// optimistic version check, so a stale writer surfaces ErrCartConflict
// instead of silently losing an update. A cart row with zero line items is
// never committed; the engine deletes the cart before that state arises.
type CartStore struct {
	pool *pgxpool.Pool
}

var _ domain.CartStore = (*CartStore)(nil)

func NewCartStore(pool *pgxpool.Pool) *CartStore {
	return &CartStore{pool: pool}
}

func (s *CartStore) Get(ctx context.Context, id uuid.UUID) (*domain.Cart, error) {
	var cart domain.Cart
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, total_amount_cents, version, updated_at
		 FROM carts WHERE id = $1`, id).
		Scan(&cart.ID, &cart.UserID, &cart.TotalAmountCents, &cart.Version, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		return nil, domain.Internal(err, "cart.get", "failed to get cart")
	}

	if err := s.loadItems(ctx, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartStore) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	var cart domain.Cart
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, total_amount_cents, version, updated_at
		 FROM carts WHERE user_id = $1`, userID).
		Scan(&cart.ID, &cart.UserID, &cart.TotalAmountCents, &cart.Version, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		return nil, domain.Internal(err, "cart.get_by_user", "failed to get cart")
	}

	if err := s.loadItems(ctx, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartStore) loadItems(ctx context.Context, cart *domain.Cart) error {
	rows, err := s.pool.Query(ctx,
		`SELECT product_id, quantity, unit_price_cents
		 FROM cart_items WHERE cart_id = $1 ORDER BY added_at`, cart.ID)
	if err != nil {
		return domain.Internal(err, "cart.get", "failed to query cart items")
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartLineItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPriceCents); err != nil {
			return domain.Internal(err, "cart.get", "failed to scan cart item")
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Internal(err, "cart.get", "failed to read cart items")
	}

	return nil
}

func (s *CartStore) Save(ctx context.Context, cart *domain.Cart) error {
	const op = "cart.save"

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Internal(err, op, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	if cart.Version == 0 {
		_, err = tx.Exec(ctx,
			`INSERT INTO carts (id, user_id, total_amount_cents, version, updated_at)
			 VALUES ($1, $2, $3, 1, $4)`,
			cart.ID, cart.UserID, cart.TotalAmountCents, cart.UpdatedAt)
		if err != nil {
			return domain.Internal(err, op, "failed to insert cart")
		}
	} else {
		tag, err := tx.Exec(ctx,
			`UPDATE carts SET total_amount_cents = $2, version = version + 1, updated_at = $3
			 WHERE id = $1 AND version = $4`,
			cart.ID, cart.TotalAmountCents, cart.UpdatedAt, cart.Version)
		if err != nil {
			return domain.Internal(err, op, "failed to update cart")
		}
		if tag.RowsAffected() == 0 {
			// Either the cart vanished or another writer bumped the version.
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM carts WHERE id = $1)`, cart.ID).Scan(&exists); err != nil {
				return domain.Internal(err, op, "failed to check cart existence")
			}
			if !exists {
				return domain.ErrCartNotFound
			}
			return domain.ErrCartConflict
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.ID); err != nil {
		return domain.Internal(err, op, "failed to clear cart items")
	}

	for _, item := range cart.Items {
		_, err := tx.Exec(ctx,
			`INSERT INTO cart_items (cart_id, product_id, quantity, unit_price_cents)
			 VALUES ($1, $2, $3, $4)`,
			cart.ID, item.ProductID, item.Quantity, item.UnitPriceCents)
		if err != nil {
			return domain.Internal(err, op, "failed to insert cart item")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Internal(err, op, "failed to commit cart")
	}

	cart.Version++
	return nil
}

func (s *CartStore) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "cart.delete"

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Internal(err, op, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, id); err != nil {
		return domain.Internal(err, op, "failed to delete cart items")
	}

	tag, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, op, "failed to delete cart")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Internal(err, op, "failed to commit cart deletion")
	}

	return nil
}
