package handler

import (
	"net/http"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
)

// CartStore holds the shopper's cart.
type CartStore interface {
	Cart() model.CartView
	AddToCart(productID string, qty int) (model.CartItem, error)
	UpdateQuantity(productID string, qty int) (model.CartItem, error)
	RemoveFromCart(productID string)
	ClearCart()
}

// CartHandler serves the shopper's cart.
type CartHandler struct {
	store  CartStore
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(s CartStore, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		store:  s,
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

type cartLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Cart())
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var body cartLineRequest
	if !decodeJSON(w, r, &body, h.logger) {
		return
	}
	if body.ProductID == "" {
		writeDomainError(w, model.NewValidationError(map[string]string{"productId": "productId is required"}), h.logger)
		return
	}

	if _, err := h.store.AddToCart(body.ProductID, body.Quantity); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.store.Cart())
}

// Update handles PUT /api/cart/{productId}.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body cartLineRequest
	if !decodeJSON(w, r, &body, h.logger) {
		return
	}

	if _, err := h.store.UpdateQuantity(r.PathValue("productId"), body.Quantity); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.store.Cart())
}

// Remove handles DELETE /api/cart/{productId}. Removing an absent line is not an error.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.store.RemoveFromCart(r.PathValue("productId"))
	writeJSON(w, http.StatusOK, h.store.Cart())
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.ClearCart()
	writeJSON(w, http.StatusOK, h.store.Cart())
}
