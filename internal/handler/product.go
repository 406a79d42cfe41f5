package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/0ShNa0/ThriftAlley/internal/domain"
	"github.com/0ShNa0/ThriftAlley/internal/middleware"
	"github.com/0ShNa0/ThriftAlley/internal/service"
)

// maxUploadBytes bounds the multipart form size for listing uploads.
const maxUploadBytes = 32 << 20

// ProductHandler serves the seller listing and catalogue endpoints.
type ProductHandler struct {
	products domain.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(products domain.ProductService, validate *validator.Validate, logger *slog.Logger) *ProductHandler {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{products: products, validate: validate, logger: logger}
}

type productResponse struct {
	ID                uuid.UUID `json:"id"`
	SellerID          uuid.UUID `json:"sellerId"`
	Name              string    `json:"name"`
	GarmentType       string    `json:"garmentType"`
	Colour            string    `json:"colour"`
	Size              string    `json:"size"`
	PriceCents        int64     `json:"priceCents"`
	AvailableQuantity int32     `json:"availableQuantity"`
	IsSold            bool      `json:"isSold"`
	Images            []string  `json:"images"`
	CreatedAt         time.Time `json:"createdAt"`
}

func newProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:                p.ID,
		SellerID:          p.SellerID,
		Name:              p.Name,
		GarmentType:       string(p.GarmentType),
		Colour:            string(p.Colour),
		Size:              string(p.Size),
		PriceCents:        p.PriceCents,
		AvailableQuantity: p.AvailableQuantity,
		IsSold:            p.IsSold,
		Images:            p.Images,
		CreatedAt:         p.CreatedAt,
	}
}

func newProductListResponse(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, newProductResponse(&products[i]))
	}
	return out
}

// AddForSelling handles POST /api/v1/products/addForSelling.
// Expects a multipart form with the listing fields and up to three images.
func (h *ProductHandler) AddForSelling(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, domain.Errorf(domain.EUNAUTHORIZED, "ProductHandler.AddForSelling", "Authentication required"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, domain.Errorf(domain.EINVALID, "ProductHandler.AddForSelling", "Invalid multipart form"))
		return
	}

	priceCents, err := strconv.ParseInt(r.FormValue("priceCents"), 10, 64)
	if err != nil {
		writeError(w, r, domain.Errorf(domain.EINVALID, "ProductHandler.AddForSelling", "priceCents must be an integer"))
		return
	}
	quantity, err := strconv.ParseInt(r.FormValue("availableQuantity"), 10, 32)
	if err != nil {
		writeError(w, r, domain.Errorf(domain.EINVALID, "ProductHandler.AddForSelling", "availableQuantity must be an integer"))
		return
	}

	params := domain.CreateProductParams{
		Name:              r.FormValue("name"),
		GarmentType:       domain.GarmentType(r.FormValue("garmentType")),
		Colour:            domain.Colour(r.FormValue("colour")),
		Size:              domain.Size(r.FormValue("size")),
		PriceCents:        priceCents,
		AvailableQuantity: int32(quantity),
	}

	var images []domain.ProductImage
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["images"] {
			if len(images) >= service.MaxProductImages {
				writeError(w, r, domain.Errorf(domain.EINVALID, "ProductHandler.AddForSelling", "At most %d images are allowed", service.MaxProductImages))
				return
			}
			f, err := fh.Open()
			if err != nil {
				writeError(w, r, domain.Internal(err, "ProductHandler.AddForSelling", "Failed to read uploaded image"))
				return
			}
			defer f.Close()
			images = append(images, domain.ProductImage{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Content:     f,
			})
		}
	}

	product, err := h.products.AddProduct(r.Context(), user.ID, params, images)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"product": newProductResponse(product)})
}

// GetSellerProducts handles GET /api/v1/products/getSellerProducts
func (h *ProductHandler) GetSellerProducts(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, r, domain.Errorf(domain.EUNAUTHORIZED, "ProductHandler.GetSellerProducts", "Authentication required"))
		return
	}

	products, err := h.products.SellerProducts(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": newProductListResponse(products)})
}

// SearchProducts handles GET /api/v1/products/searchProducts
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": newProductListResponse(products)})
}

type stockRequest struct {
	Quantity int32 `json:"quantity" validate:"required,gt=0"`
}

// IncrementProduct handles PATCH /api/v1/products/incrementProduct/{productId}
func (h *ProductHandler) IncrementProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("productId"))
	if err != nil {
		writeError(w, r, domain.Errorf(domain.EINVALID, "ProductHandler.IncrementProduct", "Invalid product id"))
		return
	}

	var req stockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, domain.ErrInvalidQuantity)
		return
	}

	product, err := h.products.IncrementStock(r.Context(), productID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"product": newProductResponse(product)})
}

// DecrementProduct handles PATCH /api/v1/products/decrementProduct/{productId}
func (h *ProductHandler) DecrementProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(r.PathValue("productId"))
	if err != nil {
		writeError(w, r, domain.Errorf(domain.EINVALID, "ProductHandler.DecrementProduct", "Invalid product id"))
		return
	}

	var req stockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, domain.ErrInvalidQuantity)
		return
	}

	product, err := h.products.DecrementStock(r.Context(), productID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Stock drained to zero delists the product entirely
	if product.IsSold {
		writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "product": newProductResponse(product)})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"product": newProductResponse(product)})
}
