package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_Recalculate(t *testing.T) {
	tests := []struct {
		name     string
		items    []CartItem
		expected float64
	}{
		{
			name:     "Empty cart",
			items:    nil,
			expected: 0,
		},
		{
			name: "Two items",
			items: []CartItem{
				{Quantity: 2, Price: 10},
				{Quantity: 1, Price: 5},
			},
			expected: 25,
		},
		{
			name: "Fractional prices round to cents",
			items: []CartItem{
				{Quantity: 3, Price: 19.99},
			},
			expected: 59.97,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := &Cart{Items: tt.items}
			cart.Recalculate()
			assert.Equal(t, tt.expected, cart.TotalCartPrice)
			assert.Nil(t, cart.TotalPriceAfterDiscount)
		})
	}
}

func TestCart_Recalculate_ClearsDiscount(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{Quantity: 2, Price: 10},
			{Quantity: 1, Price: 5},
		},
	}
	cart.Recalculate()
	cart.ApplyDiscount(20)

	require.NotNil(t, cart.TotalPriceAfterDiscount)
	assert.Equal(t, 20.00, *cart.TotalPriceAfterDiscount)

	// Any edit to the item set must discard the stale discount.
	cart.Items[0].Quantity = 3
	cart.Recalculate()

	assert.Equal(t, 35.00, cart.TotalCartPrice)
	assert.Nil(t, cart.TotalPriceAfterDiscount)
}

func TestCart_ApplyDiscount(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		percent  float64
		expected float64
	}{
		{name: "20 percent off 25", total: 25, percent: 20, expected: 20.00},
		{name: "Rounds to cents", total: 10, percent: 33, expected: 6.70},
		{name: "Full discount", total: 25, percent: 100, expected: 0},
		{name: "Zero discount", total: 25, percent: 0, expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := &Cart{TotalCartPrice: tt.total}
			cart.ApplyDiscount(tt.percent)
			require.NotNil(t, cart.TotalPriceAfterDiscount)
			assert.Equal(t, tt.expected, *cart.TotalPriceAfterDiscount)
			assert.Equal(t, tt.total, cart.TotalCartPrice)
		})
	}
}

func TestCart_EffectivePrice(t *testing.T) {
	cart := &Cart{TotalCartPrice: 25}
	assert.Equal(t, 25.00, cart.EffectivePrice())

	// A 100% coupon leaves a present zero, which must win over the raw total.
	cart.ApplyDiscount(100)
	assert.Equal(t, 0.00, cart.EffectivePrice())

	cart.ApplyDiscount(20)
	assert.Equal(t, 20.00, cart.EffectivePrice())
}

func TestCart_FindItem(t *testing.T) {
	productID := uuid.New()
	otherID := uuid.New()

	cart := &Cart{
		Items: []CartItem{
			{ID: uuid.New(), ProductID: productID, Color: "red"},
			{ID: uuid.New(), ProductID: productID, Color: "blue"},
			{ID: uuid.New(), ProductID: otherID, Color: "red"},
		},
	}

	// Same product in a different colour is a distinct line item.
	assert.Equal(t, 0, cart.FindItem(productID, "red"))
	assert.Equal(t, 1, cart.FindItem(productID, "blue"))
	assert.Equal(t, 2, cart.FindItem(otherID, "red"))
	assert.Equal(t, -1, cart.FindItem(productID, "green"))
	assert.Equal(t, -1, cart.FindItem(uuid.New(), "red"))
}

func TestCart_FindItemByID(t *testing.T) {
	itemID := uuid.New()
	cart := &Cart{
		Items: []CartItem{
			{ID: uuid.New()},
			{ID: itemID},
		},
	}

	assert.Equal(t, 1, cart.FindItemByID(itemID))
	assert.Equal(t, -1, cart.FindItemByID(uuid.New()))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 19.99, Round2(19.989999))
	assert.Equal(t, 6.7, Round2(6.7000000000000001))
	assert.Equal(t, 0.00, Round2(0))
}
