package domain

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// PRODUCT DOMAIN ERRORS
// =============================================================================

var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}

	// ErrProductUnavailable gates all adds on a delisted garment, before any
	// ceiling math.
	ErrProductUnavailable = &Error{Code: ESTOCK, Message: "Product is no longer available"}
)

// GarmentType is the clothing category of a listing.
type GarmentType string

const (
	GarmentShirt    GarmentType = "shirt"
	GarmentPants    GarmentType = "pants"
	GarmentShorts   GarmentType = "shorts"
	GarmentJeans    GarmentType = "jeans"
	GarmentTrousers GarmentType = "trousers"
	GarmentDress    GarmentType = "dress"
	GarmentTop      GarmentType = "top"
	GarmentTShirt   GarmentType = "t-shirt"
	GarmentLeggings GarmentType = "leggings"
	GarmentKurta    GarmentType = "kurta"
	GarmentPyjama   GarmentType = "pyjama"
	GarmentLehenga  GarmentType = "lehenga"
	GarmentSaree    GarmentType = "saree"
	GarmentAnarkali GarmentType = "anarkali"
	GarmentJacket   GarmentType = "jacket"
	GarmentBlazer   GarmentType = "blazer"
	GarmentCoat     GarmentType = "coat"
	GarmentScarf    GarmentType = "scarf"
	GarmentMuffler  GarmentType = "muffler"
	GarmentGloves   GarmentType = "gloves"
	GarmentDhoti    GarmentType = "dhoti"
	GarmentSocks    GarmentType = "socks"
)

var garmentTypes = map[GarmentType]struct{}{
	GarmentShirt: {}, GarmentPants: {}, GarmentShorts: {}, GarmentJeans: {},
	GarmentTrousers: {}, GarmentDress: {}, GarmentTop: {}, GarmentTShirt: {},
	GarmentLeggings: {}, GarmentKurta: {}, GarmentPyjama: {}, GarmentLehenga: {},
	GarmentSaree: {}, GarmentAnarkali: {}, GarmentJacket: {}, GarmentBlazer: {},
	GarmentCoat: {}, GarmentScarf: {}, GarmentMuffler: {}, GarmentGloves: {},
	GarmentDhoti: {}, GarmentSocks: {},
}

// Valid reports whether the garment type is a known category.
func (g GarmentType) Valid() bool {
	_, ok := garmentTypes[g]
	return ok
}

// Colour is the listed colour of a garment.
type Colour string

var colours = map[Colour]struct{}{
	"red": {}, "yellow": {}, "white": {}, "blue": {}, "green": {}, "pink": {},
	"purple": {}, "brown": {}, "black": {}, "golden": {}, "silver": {}, "lilac": {},
}

// Valid reports whether the colour is in the supported palette.
func (c Colour) Valid() bool {
	_, ok := colours[c]
	return ok
}

// Size is a garment size.
type Size string

var sizes = map[Size]struct{}{
	"XS": {}, "S": {}, "M": {}, "L": {}, "XL": {},
}

// Valid reports whether the size is supported.
func (s Size) Valid() bool {
	_, ok := sizes[s]
	return ok
}

// Product is a second-hand garment listed by a seller.
//
// AvailableQuantity is the stock ceiling for cart holds. It is decremented
// only through the seller inventory workflow (DecrementStock), never by the
// cart engine: cart reservations are weak, non-exclusive holds.
type Product struct {
	ID                uuid.UUID
	SellerID          uuid.UUID
	Name              string
	GarmentType       GarmentType
	Colour            Colour
	Size              Size
	PriceCents        int64
	AvailableQuantity int32
	IsSold            bool
	Images            []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProductStore persists product listings.
type ProductStore interface {
	Get(ctx context.Context, id uuid.UUID) (*Product, error)

	// GetBatch looks up many products at once. Missing IDs are simply absent
	// from the returned map, not an error.
	GetBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Product, error)

	List(ctx context.Context) ([]Product, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateProductParams are the seller-supplied fields for a new listing.
type CreateProductParams struct {
	Name              string
	GarmentType       GarmentType
	Colour            Colour
	Size              Size
	PriceCents        int64
	AvailableQuantity int32
}

// ProductImage is an uploaded image pending storage.
type ProductImage struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// ProductService is the seller listing workflow.
type ProductService interface {
	AddProduct(ctx context.Context, sellerID uuid.UUID, params CreateProductParams, images []ProductImage) (*Product, error)
	SellerProducts(ctx context.Context, sellerID uuid.UUID) ([]Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	IncrementStock(ctx context.Context, productID uuid.UUID, quantity int32) (*Product, error)
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int32) (*Product, error)
}
