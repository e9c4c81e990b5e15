package store

import (
	"math"
	"testing"

	"aura-bijoux/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCart(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		adds      []int
		want      int
		wantErr   error
	}{
		{name: "default quantity", productID: "P2", adds: []int{0}, want: 1},
		{name: "caps new line at stock", productID: "P1", adds: []int{5}, want: 3},
		{name: "existing line grows", productID: "P2", adds: []int{2, 3}, want: 5},
		{name: "existing line caps at stock", productID: "P1", adds: []int{2, 2}, want: 3},
		{name: "huge request caps new line at stock", productID: "P2", adds: []int{math.MaxInt}, want: 10},
		{name: "huge request caps existing line at stock", productID: "P2", adds: []int{1, math.MaxInt}, want: 10},
		{name: "sold out", productID: "P3", adds: []int{1}, wantErr: model.ErrStockExceeded},
		{name: "unknown product", productID: "P9", adds: []int{1}, wantErr: model.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)

			var (
				line model.CartItem
				err  error
			)
			for _, qty := range tt.adds {
				line, err = s.AddToCart(tt.productID, qty)
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, s.Cart().Lines)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, line.Quantity)
			assert.Equal(t, tt.want, s.Cart().Count)
		})
	}
}

func TestAddToCart_HugeQuantityChecksOutWithinStock(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Register("Marta", "marta@example.com", "segredo1")
	require.NoError(t, err)

	_, err = s.AddToCart("P2", 1)
	require.NoError(t, err)
	line, err := s.AddToCart("P2", math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, 10, line.Quantity)

	order, err := s.PlaceOrder(validCheckout())
	require.NoError(t, err)
	assert.Equal(t, "400.00", order.Total.String())
	assert.Equal(t, 400, order.PointsAwarded)

	p, err := s.Product("P2")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		requested, stock, want int
	}{
		{requested: 0, stock: 3, want: 1},
		{requested: -4, stock: 3, want: 1},
		{requested: 2, stock: 3, want: 2},
		{requested: 3, stock: 3, want: 3},
		{requested: 10, stock: 3, want: 3},
		{requested: 2, stock: 0, want: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampQuantity(tt.requested, tt.stock), "requested=%d stock=%d", tt.requested, tt.stock)
	}
}

func TestUpdateQuantity_Clamps(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddToCart("P1", 1)
	require.NoError(t, err)

	for requested, want := range map[int]int{0: 1, 2: 2, 10: 3} {
		line, err := s.UpdateQuantity("P1", requested)
		require.NoError(t, err)
		assert.Equal(t, want, line.Quantity, "requested %d", requested)
	}
}

func TestUpdateQuantity_NotInCart(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateQuantity("P2", 2)
	assert.ErrorIs(t, err, model.ErrCartItemNotFound)
}

func TestRemoveFromCart_AbsentIsNoop(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddToCart("P2", 2)
	require.NoError(t, err)

	s.RemoveFromCart("P1")
	assert.Equal(t, 2, s.Cart().Count)

	s.RemoveFromCart("P2")
	assert.Empty(t, s.Cart().Lines)
}

func TestCart_Quote(t *testing.T) {
	s := newTestStore(t)

	empty := s.Cart()
	assert.Equal(t, "0.00", empty.Quote.Total.String())

	_, err := s.AddToCart("P2", 1)
	require.NoError(t, err)
	view := s.Cart()
	assert.Equal(t, "40.00", view.Quote.Subtotal.String())
	assert.Equal(t, "5.90", view.Quote.Shipping.String())
	assert.Equal(t, "45.90", view.Quote.Total.String())
	require.NotNil(t, view.Lines[0].Product)
	assert.Equal(t, "Brincos Sol", view.Lines[0].Product.Name)

	_, err = s.AddToCart("P1", 1)
	require.NoError(t, err)
	view = s.Cart()
	assert.Equal(t, "60.00", view.Quote.Subtotal.String())
	assert.Equal(t, "0.00", view.Quote.Shipping.String())
	assert.Equal(t, "60.00", view.Quote.Total.String())
}

func TestCart_SalePricing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddToCart("P2", 2)
	require.NoError(t, err)

	on, discount := true, 25
	_, err = s.UpdateSettings(model.SettingsPatch{SaleMode: &on, DiscountPercent: &discount})
	require.NoError(t, err)

	view := s.Cart()
	assert.Equal(t, "30.00", view.Lines[0].UnitPrice.String())
	assert.Equal(t, "60.00", view.Lines[0].LineTotal.String())
	assert.Equal(t, "0.00", view.Quote.Shipping.String())
}

func TestClearCart(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddToCart("P2", 1)
	require.NoError(t, err)

	s.ClearCart()
	assert.Empty(t, s.Cart().Lines)
}
