package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrCartNotFound     = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Product not in cart"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}

	// ErrQuantityExceedsStock means an add would push a line item past the
	// product's available quantity.
	ErrQuantityExceedsStock = &Error{Code: ESTOCK, Message: "Product is not available in the desired quantity"}

	// ErrQuantityExceedsAllocation means a remove asked for more than the
	// cart holds.
	ErrQuantityExceedsAllocation = &Error{Code: EALLOCATION, Message: "Quantity exceeds cart allocation"}

	// ErrCartConflict is a stale-version write surfaced by the store when
	// two writers race past the engine's lock (e.g. separate processes).
	ErrCartConflict = &Error{Code: ECONFLICT, Message: "Cart was modified concurrently, please retry"}
)

// CartLineItem is one (product, quantity) pairing within a cart.
//
// UnitPriceCents is the product price captured when the line was first
// added. TotalAmountCents is a ledger over these snapshots: later price
// changes on the product never retroactively alter a cart total.
type CartLineItem struct {
	ProductID      uuid.UUID
	Quantity       int32
	UnitPriceCents int64
}

// Cart holds a user's reserved line items and a running total.
//
// A persisted cart always has at least one line item; the engine deletes
// the record the moment it would go empty. At most one line item exists per
// product. Version is an optimistic concurrency token bumped on every save.
type Cart struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Items            []CartLineItem
	TotalAmountCents int64
	Version          int64
	UpdatedAt        time.Time
}

// Item returns the line item for productID, or nil.
func (c *Cart) Item(productID uuid.UUID) *CartLineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// RemoveItem deletes the line item for productID, if present.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// CartViewItem is a line item expanded with its product summary for
// presentation.
type CartViewItem struct {
	ProductID         uuid.UUID
	Name              string
	Size              Size
	Colour            Colour
	Images            []string
	Quantity          int32
	UnitPriceCents    int64
	LineSubtotalCents int64
}

// CartView is the denormalized read model returned by FetchCart.
type CartView struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Items            []CartViewItem
	TotalAmountCents int64
	UpdatedAt        time.Time
}

// CartStore persists carts and their line items.
//
// Lookups return ErrCartNotFound for absent carts; an "empty but present"
// cart is not a representable state.
type CartStore interface {
	Get(ctx context.Context, id uuid.UUID) (*Cart, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save inserts the cart when Version is zero, otherwise updates it with
	// an optimistic version check. Cart and line items persist atomically.
	// Returns ErrCartConflict on a stale version.
	Save(ctx context.Context, cart *Cart) error

	Delete(ctx context.Context, id uuid.UUID) error
}

// CartEngine owns the consistency logic between cart line items, product
// stock ceilings, and the running total.
type CartEngine interface {
	// AddToCart adds quantity of a product to the user's cart, creating the
	// cart on first use.
	AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*Cart, error)

	// RemoveFromCart removes quantity of a product, or the whole line item
	// when quantity is nil. The bool result reports that the cart emptied
	// and was deleted.
	RemoveFromCart(ctx context.Context, userID, productID uuid.UUID, quantity *int32) (*Cart, bool, error)

	// FetchCart returns the cart with line items expanded to product
	// summaries. Pure read.
	FetchCart(ctx context.Context, userID uuid.UUID) (*CartView, error)
}
