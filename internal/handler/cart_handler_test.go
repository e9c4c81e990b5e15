package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aura-bijoux/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) model.CartView {
	t.Helper()
	var view model.CartView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	return view
}

func TestCartHandler_Add(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedCount  int
	}{
		{name: "adds one", body: cartLineRequest{ProductID: "P1", Quantity: 1}, expectedStatus: http.StatusOK, expectedCount: 1},
		{name: "clamps to stock", body: cartLineRequest{ProductID: "P1", Quantity: 9}, expectedStatus: http.StatusOK, expectedCount: 2},
		{name: "sold out", body: cartLineRequest{ProductID: "P2", Quantity: 1}, expectedStatus: http.StatusConflict},
		{name: "unknown product", body: cartLineRequest{ProductID: "P404", Quantity: 1}, expectedStatus: http.StatusNotFound},
		{name: "missing product", body: cartLineRequest{Quantity: 1}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCartHandler(newTestStore(t), zerolog.Nop())
			rec := httptest.NewRecorder()

			h.Add(rec, httptest.NewRequest(http.MethodPost, "/api/cart", jsonBody(t, tt.body)))

			require.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedCount, decodeCart(t, rec).Count)
			}
		})
	}
}

func TestCartHandler_AddHugeQuantityStaysWithinStock(t *testing.T) {
	s := newTestStore(t)
	h := NewCartHandler(s, zerolog.Nop())
	_, err := s.AddToCart("P1", 1)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Add(rec, httptest.NewRequest(http.MethodPost, "/api/cart",
		stringsReader(`{"productId":"P1","quantity":9223372036854775807}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeCart(t, rec)
	assert.Equal(t, 2, view.Count)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "40.00", view.Quote.Subtotal.String())
}

func TestCartHandler_UpdateRemoveClear(t *testing.T) {
	s := newTestStore(t)
	h := NewCartHandler(s, zerolog.Nop())
	_, err := s.AddToCart("P1", 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/cart/P1", jsonBody(t, cartLineRequest{Quantity: 2}))
	req.SetPathValue("productId", "P1")
	rec := httptest.NewRecorder()
	h.Update(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeCart(t, rec)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "40.00", view.Quote.Subtotal.String())
	assert.Equal(t, "5.90", view.Quote.Shipping.String())

	req = httptest.NewRequest(http.MethodPut, "/api/cart/P2", jsonBody(t, cartLineRequest{Quantity: 1}))
	req.SetPathValue("productId", "P2")
	rec = httptest.NewRecorder()
	h.Update(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/cart/P2", nil)
	req.SetPathValue("productId", "P2")
	rec = httptest.NewRecorder()
	h.Remove(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "removing an absent line is a no-op")

	rec = httptest.NewRecorder()
	h.Clear(rec, httptest.NewRequest(http.MethodDelete, "/api/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeCart(t, rec)
	assert.Zero(t, view.Count)
	assert.Equal(t, "0.00", view.Quote.Total.String())
}
