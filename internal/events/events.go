package events

import (
	"context"

	"github.com/google/uuid"
)

// Subjects for marketplace lifecycle events.
const (
	SubjectCartUpdated     = "thriftalley.cart.updated"
	SubjectCartDeleted     = "thriftalley.cart.deleted"
	SubjectProductListed   = "thriftalley.product.listed"
	SubjectProductDelisted = "thriftalley.product.delisted"
)

// Publisher emits lifecycle events for downstream consumers.
// Publishing is fire-and-forget from the caller's perspective: a failed
// publish is logged, never surfaced to the request.
type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
	Close()
}

// CartEvent describes a cart mutation.
type CartEvent struct {
	CartID           uuid.UUID `json:"cart_id"`
	UserID           uuid.UUID `json:"user_id"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	ItemCount        int       `json:"item_count"`
}

// ProductEvent describes a listing lifecycle change.
type ProductEvent struct {
	ProductID uuid.UUID `json:"product_id"`
	SellerID  uuid.UUID `json:"seller_id"`
}
