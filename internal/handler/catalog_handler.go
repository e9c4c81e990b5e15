package handler

import (
	"net/http"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
)

// CatalogStore reads and maintains the product catalogue.
type CatalogStore interface {
	Products(filter model.ProductFilter) []model.Product
	Product(id string) (model.Product, error)
	AddReview(productID string, input model.ReviewInput) (model.Review, error)
	CriticalProducts() []model.Product
	CreateProduct(input model.ProductInput) (model.Product, error)
	UpdateProduct(id string, input model.ProductInput) (model.Product, error)
	DeleteProduct(id string) error
	AdjustStock(id string, delta int) (model.Product, error)
}

// CatalogHandler serves the product catalogue, reviews and restock sign-ups.
type CatalogHandler struct {
	store        CatalogStore
	interactions Interactor
	logger       zerolog.Logger
}

// NewCatalogHandler creates a new catalogue handler.
func NewCatalogHandler(s CatalogStore, interactions Interactor, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		store:        s,
		interactions: interactions,
		logger:       logger.With().Str("handler", "catalog").Logger(),
	}
}

// List handles GET /api/products?category=&color=&q=&sort=.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ProductFilter{
		Category: model.Category(q.Get("category")),
		Color:    model.Color(q.Get("color")),
		Query:    q.Get("q"),
		Sort:     model.ProductSort(q.Get("sort")),
	}

	writeJSON(w, http.StatusOK, orEmpty(h.store.Products(filter)))
}

// Get handles GET /api/products/{id}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.store.Product(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// AddReview handles POST /api/products/{id}/reviews.
func (h *CatalogHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var input model.ReviewInput
	if !decodeJSON(w, r, &input, h.logger) {
		return
	}

	review, err := h.store.AddReview(r.PathValue("id"), input)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

type restockRequest struct {
	Email string `json:"email"`
}

// RequestRestock handles POST /api/products/{id}/restock.
func (h *CatalogHandler) RequestRestock(w http.ResponseWriter, r *http.Request) {
	var body restockRequest
	if !decodeJSON(w, r, &body, h.logger) {
		return
	}

	req, err := h.interactions.RequestRestock(r.Context(), r.PathValue("id"), body.Email)
	if err != nil {
		writeInteractionError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusAccepted, req)
}

// Critical handles GET /api/admin/products/critical.
func (h *CatalogHandler) Critical(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orEmpty(h.store.CriticalProducts()))
}

// Create handles POST /api/admin/products.
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.ProductInput
	if !decodeJSON(w, r, &input, h.logger) {
		return
	}

	product, err := h.store.CreateProduct(input)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/admin/products/{id}.
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input model.ProductInput
	if !decodeJSON(w, r, &input, h.logger) {
		return
	}

	product, err := h.store.UpdateProduct(r.PathValue("id"), input)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/admin/products/{id}.
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProduct(r.PathValue("id")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type stockAdjustment struct {
	Delta int `json:"delta"`
}

// AdjustStock handles POST /api/admin/products/{id}/stock.
func (h *CatalogHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var body stockAdjustment
	if !decodeJSON(w, r, &body, h.logger) {
		return
	}

	product, err := h.store.AdjustStock(r.PathValue("id"), body.Delta)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
