// Package handler exposes the storefront core over HTTP: catalog browsing
// with search, sort, and filters, cart mutation, and the checkout handoff.
package handler

import (
	"context"
	"net/http"

	"github.com/dukicks/storefront/internal/domain/cart"
	"github.com/dukicks/storefront/internal/domain/catalog"
	"github.com/dukicks/storefront/internal/domain/pricing"
)

// APIKeyInfo holds the identity data for a validated admin API key.
type APIKeyInfo struct {
	ID      string
	KeyHash string
	Name    string
}

// APIKeyRepository provides lookup of admin API keys by their HMAC-SHA256 hash.
type APIKeyRepository interface {
	FindByHash(ctx context.Context, hash string) (*APIKeyInfo, error)
}

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// StorePhone is the WhatsApp destination for checkout handoffs.
	StorePhone string
	// APIKeyPepper is the HMAC pepper used to hash admin API keys.
	APIKeyPepper []byte
}

// Handler serves the storefront API, delegating to the domain packages.
type Handler struct {
	products catalog.Repository
	cart     *cart.Cart
	apikeys  APIKeyRepository
	prices   *pricing.Formatter

	storePhone string
	pepper     []byte
}

// New constructs a Handler with the required domain dependencies.
func New(cfg Config, products catalog.Repository, c *cart.Cart, apikeys APIKeyRepository) *Handler {
	return &Handler{
		products:   products,
		cart:       c,
		apikeys:    apikeys,
		prices:     pricing.NewFormatter(),
		storePhone: cfg.StorePhone,
		pepper:     cfg.APIKeyPepper,
	}
}

// Routes registers all API routes on the given mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{id}", h.getProduct)
	mux.HandleFunc("GET /api/brands", h.listBrands)

	mux.HandleFunc("POST /api/products", h.requireAPIKey(h.createProduct))
	mux.HandleFunc("PUT /api/products/{id}", h.requireAPIKey(h.updateProduct))
	mux.HandleFunc("DELETE /api/products/{id}", h.requireAPIKey(h.deleteProduct))

	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("POST /api/cart/items", h.addCartItem)
	mux.HandleFunc("PATCH /api/cart/items", h.updateCartItem)
	mux.HandleFunc("DELETE /api/cart/items", h.removeCartItem)
	mux.HandleFunc("DELETE /api/cart", h.clearCart)

	mux.HandleFunc("POST /api/checkout", h.checkout)
}
