package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
	"github.com/0ShNa0/ThriftAlley/internal/events"
	"github.com/0ShNa0/ThriftAlley/internal/memory"
	"github.com/0ShNa0/ThriftAlley/internal/service"
	"github.com/0ShNa0/ThriftAlley/internal/storage"
)

type productFixture struct {
	users     *memory.UserStore
	products  *memory.ProductStore
	publisher *recordingPublisher
	svc       *service.ProductService
	seller    *domain.User
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	images, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	f := &productFixture{
		users:     memory.NewUserStore(),
		products:  memory.NewProductStore(),
		publisher: &recordingPublisher{},
	}
	f.svc = service.NewProductService(f.products, f.users, images, f.publisher, nil)

	f.seller = &domain.User{
		ID:       uuid.New(),
		FullName: "Seller",
		Email:    "seller@example.com",
	}
	require.NoError(t, f.users.Create(context.Background(), f.seller))
	return f
}

func validParams() domain.CreateProductParams {
	return domain.CreateProductParams{
		Name:              "Wool Scarf",
		GarmentType:       domain.GarmentScarf,
		Colour:            "red",
		Size:              "M",
		PriceCents:        499,
		AvailableQuantity: 3,
	}
}

func oneImage() []domain.ProductImage {
	return []domain.ProductImage{{
		Filename:    "front.jpg",
		ContentType: "image/jpeg",
		Content:     strings.NewReader("jpeg-bytes"),
	}}
}

func TestAddProduct(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	product, err := f.svc.AddProduct(ctx, f.seller.ID, validParams(), oneImage())
	require.NoError(t, err)

	assert.Equal(t, f.seller.ID, product.SellerID)
	assert.False(t, product.IsSold)
	require.Len(t, product.Images, 1)
	assert.True(t, strings.HasPrefix(product.Images[0], "/uploads/products/"))

	assert.Contains(t, f.publisher.published(), events.SubjectProductListed)
}

func TestAddProduct_Validation(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	tests := []struct {
		name   string
		mutate func(p *domain.CreateProductParams)
		images []domain.ProductImage
	}{
		{"missing name", func(p *domain.CreateProductParams) { p.Name = "" }, oneImage()},
		{"bad garment type", func(p *domain.CreateProductParams) { p.GarmentType = "spaceship" }, oneImage()},
		{"bad colour", func(p *domain.CreateProductParams) { p.Colour = "octarine" }, oneImage()},
		{"bad size", func(p *domain.CreateProductParams) { p.Size = "XXXL" }, oneImage()},
		{"negative price", func(p *domain.CreateProductParams) { p.PriceCents = -1 }, oneImage()},
		{"zero quantity", func(p *domain.CreateProductParams) { p.AvailableQuantity = 0 }, oneImage()},
		{"no images", func(p *domain.CreateProductParams) {}, nil},
		{"too many images", func(p *domain.CreateProductParams) {}, append(append(oneImage(), oneImage()...), append(oneImage(), oneImage()...)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)
			_, err := f.svc.AddProduct(ctx, f.seller.ID, params, tt.images)
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		})
	}
}

func TestAddProduct_UnknownSeller(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	_, err := f.svc.AddProduct(ctx, uuid.New(), validParams(), oneImage())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSellerProducts(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	// Nothing listed yet
	_, err := f.svc.SellerProducts(ctx, f.seller.ID)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))

	_, err = f.svc.AddProduct(ctx, f.seller.ID, validParams(), oneImage())
	require.NoError(t, err)

	products, err := f.svc.SellerProducts(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	products, err := f.svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	_, err = f.svc.AddProduct(ctx, f.seller.ID, validParams(), oneImage())
	require.NoError(t, err)

	products, err = f.svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestIncrementStock(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	product, err := f.svc.AddProduct(ctx, f.seller.ID, validParams(), oneImage())
	require.NoError(t, err)

	updated, err := f.svc.IncrementStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(5), updated.AvailableQuantity)

	_, err = f.svc.IncrementStock(ctx, product.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.svc.IncrementStock(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDecrementStock(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	product, err := f.svc.AddProduct(ctx, f.seller.ID, validParams(), oneImage())
	require.NoError(t, err)

	updated, err := f.svc.DecrementStock(ctx, product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), updated.AvailableQuantity)
	assert.False(t, updated.IsSold)

	// More than available
	_, err = f.svc.DecrementStock(ctx, product.ID, 5)
	assert.Equal(t, domain.EALLOCATION, domain.ErrorCode(err))
}

func TestDecrementStock_DrainDelistsProduct(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	product, err := f.svc.AddProduct(ctx, f.seller.ID, validParams(), oneImage())
	require.NoError(t, err)

	drained, err := f.svc.DecrementStock(ctx, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, drained.IsSold)
	assert.Equal(t, int32(0), drained.AvailableQuantity)

	// The listing is gone
	_, err = f.products.Get(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.Contains(t, f.publisher.published(), events.SubjectProductDelisted)
}
