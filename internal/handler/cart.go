package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
	"github.com/0ShNa0/ThriftAlley/internal/middleware"
)

// CartHandler serves the cart endpoints.
type CartHandler struct {
	carts    domain.CartEngine
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts domain.CartEngine, validate *validator.Validate, logger *slog.Logger) *CartHandler {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{carts: carts, validate: validate, logger: logger}
}

type addToCartRequest struct {
	Quantity int32 `json:"quantity" validate:"required,gt=0"`
}

type removeFromCartRequest struct {
	// Quantity is optional; absent means remove the whole line item.
	Quantity *int32 `json:"quantity" validate:"omitempty,gt=0"`
}

type cartItemResponse struct {
	ProductID      uuid.UUID `json:"productId"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
}

type cartResponse struct {
	ID               uuid.UUID          `json:"id"`
	UserID           uuid.UUID          `json:"userId"`
	Items            []cartItemResponse `json:"items"`
	TotalAmountCents int64              `json:"totalAmountCents"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

func newCartResponse(c *domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemResponse{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		})
	}
	return cartResponse{
		ID:               c.ID,
		UserID:           c.UserID,
		Items:            items,
		TotalAmountCents: c.TotalAmountCents,
		UpdatedAt:        c.UpdatedAt,
	}
}

type cartViewItemResponse struct {
	ProductID         uuid.UUID `json:"productId"`
	Name              string    `json:"name"`
	Size              string    `json:"size"`
	Colour            string    `json:"colour"`
	Images            []string  `json:"images"`
	Quantity          int32     `json:"quantity"`
	UnitPriceCents    int64     `json:"unitPriceCents"`
	LineSubtotalCents int64     `json:"lineSubtotalCents"`
}

type cartViewResponse struct {
	ID               uuid.UUID              `json:"id"`
	UserID           uuid.UUID              `json:"userId"`
	Items            []cartViewItemResponse `json:"items"`
	TotalAmountCents int64                  `json:"totalAmountCents"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

func newCartViewResponse(v *domain.CartView) cartViewResponse {
	items := make([]cartViewItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, cartViewItemResponse{
			ProductID:         it.ProductID,
			Name:              it.Name,
			Size:              string(it.Size),
			Colour:            string(it.Colour),
			Images:            it.Images,
			Quantity:          it.Quantity,
			UnitPriceCents:    it.UnitPriceCents,
			LineSubtotalCents: it.LineSubtotalCents,
		})
	}
	return cartViewResponse{
		ID:               v.ID,
		UserID:           v.UserID,
		Items:            items,
		TotalAmountCents: v.TotalAmountCents,
		UpdatedAt:        v.UpdatedAt,
	}
}

// AddToCart handles PATCH /api/v1/carts/addToCart/{productId}
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, domain.Errorf(domain.EUNAUTHORIZED, "CartHandler.AddToCart", "Authentication required"))
		return
	}

	productID, err := uuid.Parse(r.PathValue("productId"))
	if err != nil {
		writeError(w, r, domain.Errorf(domain.EINVALID, "CartHandler.AddToCart", "Invalid product id"))
		return
	}

	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, domain.ErrInvalidQuantity)
		return
	}

	cart, err := h.carts.AddToCart(r.Context(), user.ID, productID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cart": newCartResponse(cart)})
}

// RemoveFromCart handles PATCH /api/v1/carts/removeFromCart/{productId}
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, domain.Errorf(domain.EUNAUTHORIZED, "CartHandler.RemoveFromCart", "Authentication required"))
		return
	}

	productID, err := uuid.Parse(r.PathValue("productId"))
	if err != nil {
		writeError(w, r, domain.Errorf(domain.EINVALID, "CartHandler.RemoveFromCart", "Invalid product id"))
		return
	}

	var req removeFromCartRequest
	hasBody, err := decodeJSONOptional(r, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if hasBody {
		if err := h.validate.Struct(req); err != nil {
			writeError(w, r, domain.ErrInvalidQuantity)
			return
		}
	}

	cart, deleted, err := h.carts.RemoveFromCart(r.Context(), user.ID, productID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if deleted {
		writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cart": newCartResponse(cart)})
}

// FetchCart handles GET /api/v1/carts/fetchCart
func (h *CartHandler) FetchCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, domain.Errorf(domain.EUNAUTHORIZED, "CartHandler.FetchCart", "Authentication required"))
		return
	}

	view, err := h.carts.FetchCart(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cart": newCartViewResponse(view)})
}
