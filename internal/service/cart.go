package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
	"github.com/0ShNa0/ThriftAlley/internal/events"
)

// CartEngine implements domain.CartEngine over injected stores.
//
// Every mutation runs under a per-user lock held for the whole
// load-validate-persist sequence, so interleaved requests against the same
// cart cannot lose updates. The cart store's version check is the backstop
// for writers outside this process.
type CartEngine struct {
	users    domain.UserStore
	products domain.ProductStore
	carts    domain.CartStore
	events   events.Publisher
	locks    *cartLocks
	logger   *slog.Logger
}

// Compile-time check that CartEngine implements domain.CartEngine.
var _ domain.CartEngine = (*CartEngine)(nil)

// NewCartEngine creates a cart engine.
func NewCartEngine(users domain.UserStore, products domain.ProductStore, carts domain.CartStore, publisher events.Publisher, logger *slog.Logger) *CartEngine {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CartEngine{
		users:    users,
		products: products,
		carts:    carts,
		events:   publisher,
		locks:    newCartLocks(),
		logger:   logger,
	}
}

// AddToCart adds quantity of a product to the user's cart.
//
// The stock ceiling is the product's total available quantity: the line
// item's resulting quantity may never exceed it. The product's stock itself
// is not decremented; a cart hold is a weak, non-exclusive reservation and
// only a confirmed sale reduces stock.
func (e *CartEngine) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int32) (*domain.Cart, error) {
	const op = "cart.add"

	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	release := e.locks.Acquire(userID)
	defer release()

	user, err := e.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := e.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	// Sold gate first, then ceiling math.
	if product.IsSold {
		return nil, domain.ErrProductUnavailable
	}
	if quantity > product.AvailableQuantity {
		return nil, domain.ErrQuantityExceedsStock
	}

	var cart *domain.Cart
	created := false

	if user.CartID == nil {
		// Lazily create the cart. It stays transient until the line item
		// below makes it non-empty; an empty cart is never persisted.
		cart = &domain.Cart{
			ID:     uuid.New(),
			UserID: userID,
		}
		created = true
	} else {
		cart, err = e.carts.Get(ctx, *user.CartID)
		if err != nil {
			return nil, err
		}
	}

	// The snapshot price governs the total: on accumulation the line keeps
	// the price it was first added at, so total stays the sum of line
	// subtotals even if the product is repriced in between.
	unitPrice := product.PriceCents
	if line := cart.Item(productID); line != nil {
		if line.Quantity+quantity > product.AvailableQuantity {
			return nil, domain.ErrQuantityExceedsStock
		}
		line.Quantity += quantity
		unitPrice = line.UnitPriceCents
	} else {
		cart.Items = append(cart.Items, domain.CartLineItem{
			ProductID:      productID,
			Quantity:       quantity,
			UnitPriceCents: product.PriceCents,
		})
	}

	cart.TotalAmountCents += unitPrice * int64(quantity)
	cart.UpdatedAt = time.Now()

	if err := e.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	if created {
		if err := e.users.SetCartRef(ctx, userID, &cart.ID); err != nil {
			// Don't leave an orphaned cart behind; the user still has no
			// reference to it, so deleting restores the pre-call state.
			if delErr := e.carts.Delete(ctx, cart.ID); delErr != nil {
				e.logger.Error("failed to roll back orphaned cart",
					"cart_id", cart.ID, "error", delErr)
			}
			return nil, domain.Internal(err, op, "failed to attach cart to user")
		}
	}

	e.publish(ctx, events.SubjectCartUpdated, cart)

	return cart, nil
}

// RemoveFromCart removes quantity of a product from the user's cart, or the
// entire line item when quantity is nil. When the last line item goes, the
// cart record is deleted and the user's cart reference cleared; the second
// return value reports that.
func (e *CartEngine) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID, quantity *int32) (*domain.Cart, bool, error) {
	const op = "cart.remove"

	if quantity != nil && *quantity <= 0 {
		return nil, false, domain.ErrInvalidQuantity
	}

	release := e.locks.Acquire(userID)
	defer release()

	user, err := e.users.Get(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user.CartID == nil {
		return nil, false, domain.ErrCartNotFound
	}

	cart, err := e.carts.Get(ctx, *user.CartID)
	if err != nil {
		return nil, false, err
	}

	line := cart.Item(productID)
	if line == nil {
		return nil, false, domain.ErrCartItemNotFound
	}

	toRemove := line.Quantity
	if quantity != nil {
		if *quantity > line.Quantity {
			return nil, false, domain.ErrQuantityExceedsAllocation
		}
		toRemove = *quantity
	}

	// Totals come off the snapshot price the line was added at.
	cart.TotalAmountCents -= int64(toRemove) * line.UnitPriceCents

	if toRemove == line.Quantity {
		cart.RemoveItem(productID)
	} else {
		line.Quantity -= toRemove
	}

	if len(cart.Items) == 0 {
		if err := e.carts.Delete(ctx, cart.ID); err != nil {
			return nil, false, err
		}
		if err := e.users.SetCartRef(ctx, userID, nil); err != nil {
			return nil, false, domain.Internal(err, op, "failed to clear cart reference")
		}

		e.publish(ctx, events.SubjectCartDeleted, cart)

		return nil, true, nil
	}

	cart.UpdatedAt = time.Now()
	if err := e.carts.Save(ctx, cart); err != nil {
		return nil, false, err
	}

	e.publish(ctx, events.SubjectCartUpdated, cart)

	return cart, false, nil
}

// FetchCart returns the user's cart with each line item expanded to its
// product summary. Pure read: the total is the stored snapshot ledger and
// is never re-derived from current product prices.
func (e *CartEngine) FetchCart(ctx context.Context, userID uuid.UUID) (*domain.CartView, error) {
	user, err := e.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CartID == nil {
		return nil, domain.ErrCartNotFound
	}

	cart, err := e.carts.Get(ctx, *user.CartID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(cart.Items))
	for i, item := range cart.Items {
		ids[i] = item.ProductID
	}

	products, err := e.products.GetBatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := &domain.CartView{
		ID:               cart.ID,
		UserID:           cart.UserID,
		Items:            make([]domain.CartViewItem, 0, len(cart.Items)),
		TotalAmountCents: cart.TotalAmountCents,
		UpdatedAt:        cart.UpdatedAt,
	}

	for _, item := range cart.Items {
		viewItem := domain.CartViewItem{
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			UnitPriceCents:    item.UnitPriceCents,
			LineSubtotalCents: int64(item.Quantity) * item.UnitPriceCents,
		}

		// A delisted product leaves a weak reference behind; the line keeps
		// its snapshot price and shows without a summary.
		if p, ok := products[item.ProductID]; ok {
			viewItem.Name = p.Name
			viewItem.Size = p.Size
			viewItem.Colour = p.Colour
			viewItem.Images = p.Images
		}

		view.Items = append(view.Items, viewItem)
	}

	return view, nil
}

func (e *CartEngine) publish(ctx context.Context, subject string, cart *domain.Cart) {
	err := e.events.Publish(ctx, subject, events.CartEvent{
		CartID:           cart.ID,
		UserID:           cart.UserID,
		TotalAmountCents: cart.TotalAmountCents,
		ItemCount:        len(cart.Items),
	})
	if err != nil {
		e.logger.Warn("failed to publish cart event", "subject", subject, "error", err)
	}
}
