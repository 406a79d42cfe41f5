package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
	"github.com/0ShNa0/ThriftAlley/internal/events"
	"github.com/0ShNa0/ThriftAlley/internal/storage"
)

// MaxProductImages caps the number of images per listing.
const MaxProductImages = 3

// ProductService implements the seller listing workflow. Stock increments
// and decrements here are the seller inventory side, entirely separate from
// cart reservations: the cart engine only reads AvailableQuantity.
type ProductService struct {
	products domain.ProductStore
	users    domain.UserStore
	images   storage.Storage
	events   events.Publisher
	logger   *slog.Logger
}

// Compile-time check that ProductService implements domain.ProductService.
var _ domain.ProductService = (*ProductService)(nil)

// NewProductService creates a product service.
func NewProductService(products domain.ProductStore, users domain.UserStore, images storage.Storage, publisher events.Publisher, logger *slog.Logger) *ProductService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProductService{
		products: products,
		users:    users,
		images:   images,
		events:   publisher,
		logger:   logger,
	}
}

// AddProduct stores the uploaded images and creates a new listing for the
// seller.
func (s *ProductService) AddProduct(ctx context.Context, sellerID uuid.UUID, params domain.CreateProductParams, images []domain.ProductImage) (*domain.Product, error) {
	const op = "product.add"

	if params.Name == "" {
		return nil, domain.Invalid(op, "name is required")
	}
	if !params.GarmentType.Valid() {
		return nil, domain.Errorf(domain.EINVALID, op, "invalid garment type: %s", params.GarmentType)
	}
	if !params.Colour.Valid() {
		return nil, domain.Errorf(domain.EINVALID, op, "invalid colour: %s", params.Colour)
	}
	if !params.Size.Valid() {
		return nil, domain.Errorf(domain.EINVALID, op, "invalid size: %s", params.Size)
	}
	if params.PriceCents < 0 {
		return nil, domain.Invalid(op, "price must not be negative")
	}
	if params.AvailableQuantity < 1 {
		return nil, domain.Invalid(op, "quantity must be at least 1")
	}
	if len(images) == 0 {
		return nil, domain.Invalid(op, "at least one image is required")
	}
	if len(images) > MaxProductImages {
		return nil, domain.Errorf(domain.EINVALID, op, "at most %d images allowed", MaxProductImages)
	}

	if _, err := s.users.Get(ctx, sellerID); err != nil {
		return nil, err
	}

	productID := uuid.New()

	urls := make([]string, 0, len(images))
	for i, img := range images {
		key := fmt.Sprintf("products/%s/%d%s", productID, i, path.Ext(img.Filename))
		url, err := s.images.Put(ctx, key, img.Content, img.ContentType)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to store product image")
		}
		urls = append(urls, url)
	}

	now := time.Now()
	product := &domain.Product{
		ID:                productID,
		SellerID:          sellerID,
		Name:              params.Name,
		GarmentType:       params.GarmentType,
		Colour:            params.Colour,
		Size:              params.Size,
		PriceCents:        params.PriceCents,
		AvailableQuantity: params.AvailableQuantity,
		IsSold:            false,
		Images:            urls,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, events.SubjectProductListed, product)
	s.logger.Info("product listed", "product_id", product.ID, "seller_id", sellerID)

	return product, nil
}

// SellerProducts returns the garments a seller has listed.
func (s *ProductService) SellerProducts(ctx context.Context, sellerID uuid.UUID) ([]domain.Product, error) {
	const op = "product.seller_products"

	if _, err := s.users.Get(ctx, sellerID); err != nil {
		return nil, err
	}

	products, err := s.products.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.Errorf(domain.ENOTFOUND, op, "no clothes listed by this user")
	}

	return products, nil
}

// ListProducts returns every listing in the marketplace.
func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// IncrementStock raises a listing's available quantity.
func (s *ProductService) IncrementStock(ctx context.Context, productID uuid.UUID, quantity int32) (*domain.Product, error) {
	const op = "product.increment"

	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.AvailableQuantity += quantity
	product.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DecrementStock lowers a listing's available quantity. Draining the stock
// to zero delists the garment entirely: the product record is removed and a
// delist event published.
func (s *ProductService) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int32) (*domain.Product, error) {
	const op = "product.decrement"

	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	if quantity > product.AvailableQuantity {
		return nil, domain.Errorf(domain.EALLOCATION, op, "reduction quantity exceeds available stock")
	}

	if quantity == product.AvailableQuantity {
		if err := s.products.Delete(ctx, productID); err != nil {
			return nil, err
		}
		product.AvailableQuantity = 0
		product.IsSold = true

		s.publish(ctx, events.SubjectProductDelisted, product)
		s.logger.Info("product delisted", "product_id", productID)

		return product, nil
	}

	product.AvailableQuantity -= quantity
	product.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) publish(ctx context.Context, subject string, product *domain.Product) {
	err := s.events.Publish(ctx, subject, events.ProductEvent{
		ProductID: product.ID,
		SellerID:  product.SellerID,
	})
	if err != nil {
		s.logger.Warn("failed to publish product event", "subject", subject, "error", err)
	}
}
