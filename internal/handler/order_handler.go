package handler

import (
	"net/http"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
)

// OrderStore reads the order ledger and moves orders along.
type OrderStore interface {
	Orders(filter model.OrderFilter) []model.Order
	Order(id string) (model.Order, error)
	UpdateOrderStatus(id string, status model.OrderStatus) (model.Order, error)
}

// OrderHandler handles checkout and the order ledger.
type OrderHandler struct {
	store        OrderStore
	interactions Interactor
	logger       zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(s OrderStore, interactions Interactor, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		store:        s,
		interactions: interactions,
		logger:       logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /api/checkout. The response waits for the simulated
// processing delay; a client that disconnects first leaves the cart intact.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.interactions.Checkout(r.Context(), req)
	if err != nil {
		writeInteractionError(w, r, err, h.logger)
		return
	}

	h.logger.Info().Str("order_id", order.ID).Str("total", order.Total.String()).Msg("checkout completed")
	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /api/admin/orders?status=&userId=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders := h.store.Orders(model.OrderFilter{
		UserID: q.Get("userId"),
		Status: model.OrderStatus(q.Get("status")),
	})
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/admin/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.Order(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type statusUpdate struct {
	Status model.OrderStatus `json:"status"`
}

// UpdateStatus handles PUT /api/admin/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body statusUpdate
	if !decodeJSON(w, r, &body, h.logger) {
		return
	}

	order, err := h.store.UpdateOrderStatus(r.PathValue("id"), body.Status)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
