package routes

import (
	"github.com/0ShNa0/ThriftAlley/internal/handler"
	"github.com/0ShNa0/ThriftAlley/internal/middleware"
	"github.com/0ShNa0/ThriftAlley/internal/router"
)

// Deps contains the handlers the API routes dispatch to.
type Deps struct {
	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
}

// RegisterAPIRoutes registers all /api/v1 routes.
func RegisterAPIRoutes(r *router.Router, deps Deps) {
	// Account routes; logout requires a live session
	r.Post("/api/v1/users/register", deps.UserHandler.Register)
	r.Post("/api/v1/users/login", deps.UserHandler.Login)
	r.Post("/api/v1/users/logout", deps.UserHandler.Logout, middleware.RequireAuth)

	// Product catalogue is public; listing management requires auth
	r.Get("/api/v1/products/searchProducts", deps.ProductHandler.SearchProducts)

	authed := r.Group(middleware.RequireAuth)
	authed.Post("/api/v1/products/addForSelling", deps.ProductHandler.AddForSelling)
	authed.Get("/api/v1/products/getSellerProducts", deps.ProductHandler.GetSellerProducts)
	authed.Patch("/api/v1/products/incrementProduct/{productId}", deps.ProductHandler.IncrementProduct)
	authed.Patch("/api/v1/products/decrementProduct/{productId}", deps.ProductHandler.DecrementProduct)

	// Cart routes are all user-scoped
	authed.Patch("/api/v1/carts/addToCart/{productId}", deps.CartHandler.AddToCart)
	authed.Patch("/api/v1/carts/removeFromCart/{productId}", deps.CartHandler.RemoveFromCart)
	authed.Get("/api/v1/carts/fetchCart", deps.CartHandler.FetchCart)
}
