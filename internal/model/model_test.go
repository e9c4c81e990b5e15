package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   Tier
	}{
		{0, TierBronze},
		{200, TierBronze},
		{201, TierSilver},
		{500, TierSilver},
		{501, TierGold},
		{10000, TierGold},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForPoints(tt.points), "points %d", tt.points)
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderPending:    {OrderShipped, OrderCancelled},
		OrderProcessing: {OrderShipped, OrderCancelled},
		OrderShipped:    {OrderDelivered, OrderCancelled},
		OrderDelivered:  {},
		OrderCancelled:  {},
	}
	all := []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

	for from, targets := range allowed {
		for _, to := range all {
			want := false
			for _, target := range targets {
				if target == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestMoney_JSON(t *testing.T) {
	b, err := json.Marshal(NewMoney(590))
	require.NoError(t, err)
	assert.Equal(t, `"5.90"`, string(b))

	var fromNumber, fromString Money
	require.NoError(t, json.Unmarshal([]byte(`12.5`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`"12.50"`), &fromString))
	assert.Equal(t, "12.50", fromNumber.String())
	assert.True(t, fromNumber.Equal(fromString.Decimal))

	var bad Money
	assert.Error(t, json.Unmarshal([]byte(`"doze"`), &bad))
}

func TestMoney_Arithmetic(t *testing.T) {
	price := MustMoney("19.99")

	assert.Equal(t, "59.97", price.Times(3).String())
	assert.Equal(t, "25.89", price.Add(MustMoney("5.90")).String())
	assert.Equal(t, 59, price.Times(3).WholeUnits())
}

func TestMoney_WholeUnitsSaturates(t *testing.T) {
	huge := MustMoney("40.00").Times(math.MaxInt)
	assert.Equal(t, math.MaxInt, huge.WholeUnits())
	assert.Equal(t, math.MinInt, MustMoney("-40.00").Times(math.MaxInt).WholeUnits())
}

func TestUser_MarshalIncludesTierNotPassword(t *testing.T) {
	u := User{ID: "USR-1", Name: "Marta", Points: 250, PasswordHash: []byte("secret")}

	b, err := json.Marshal(u)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "Prata", decoded["tier"])
	assert.NotContains(t, decoded, "PasswordHash")
	assert.NotContains(t, string(b), "secret")
}

func TestDomainError_Is(t *testing.T) {
	err := NewValidationError(map[string]string{"price": "must not be negative"})

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, ErrProductNotFound, ErrNotFound)
	assert.NotErrorIs(t, ErrProductNotFound, ErrOrderNotFound)
	assert.Contains(t, err.Error(), "price: must not be negative")
}
