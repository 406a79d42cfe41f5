package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
)

// ProductStore implements domain.ProductStore using PostgreSQL.
type ProductStore struct {
	pool *pgxpool.Pool
}

var _ domain.ProductStore = (*ProductStore)(nil)

func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

const productColumns = `id, seller_id, name, garment_type, colour, size,
	price_cents, available_quantity, is_sold, images, created_at, updated_at`

func (s *ProductStore) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "product.get", "failed to get product")
	}
	return p, nil
}

func (s *ProductStore) GetBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
	out := make(map[uuid.UUID]*domain.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, domain.Internal(err, "product.get_batch", "failed to query products")
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, "product.get_batch", "failed to scan product")
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "product.get_batch", "failed to read products")
	}

	return out, nil
}

func (s *ProductStore) List(ctx context.Context) ([]domain.Product, error) {
	return s.list(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
}

func (s *ProductStore) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.Product, error) {
	return s.list(ctx,
		`SELECT `+productColumns+` FROM products WHERE seller_id = $1 ORDER BY created_at, id`,
		sellerID)
}

func (s *ProductStore) list(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Internal(err, "product.list", "failed to query products")
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, "product.list", "failed to scan product")
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "product.list", "failed to read products")
	}

	return out, nil
}

func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO products (id, seller_id, name, garment_type, colour, size,
			price_cents, available_quantity, is_sold, images, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		product.ID, product.SellerID, product.Name, string(product.GarmentType),
		string(product.Colour), string(product.Size), product.PriceCents,
		product.AvailableQuantity, product.IsSold, product.Images,
		product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return domain.Internal(err, "product.create", "failed to create product")
	}
	return nil
}

func (s *ProductStore) Update(ctx context.Context, product *domain.Product) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET name = $2, garment_type = $3, colour = $4, size = $5,
			price_cents = $6, available_quantity = $7, is_sold = $8, images = $9,
			updated_at = $10
		 WHERE id = $1`,
		product.ID, product.Name, string(product.GarmentType), string(product.Colour),
		string(product.Size), product.PriceCents, product.AvailableQuantity,
		product.IsSold, product.Images, product.UpdatedAt)
	if err != nil {
		return domain.Internal(err, "product.update", "failed to update product")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "product.delete", "failed to delete product")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p           domain.Product
		garmentType string
		colour      string
		size        string
	)
	err := row.Scan(&p.ID, &p.SellerID, &p.Name, &garmentType, &colour, &size,
		&p.PriceCents, &p.AvailableQuantity, &p.IsSold, &p.Images,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.GarmentType = domain.GarmentType(garmentType)
	p.Colour = domain.Colour(colour)
	p.Size = domain.Size(size)
	return &p, nil
}
