package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusAdvancesForwardOnly(t *testing.T) {

	sequence := OrderStatusSequence()

	for i, status := range sequence {
		for j, target := range sequence {
			expected := j == i+1
			assert.Equal(t, expected, status.CanTransitionTo(target),
				"%s -> %s", status, target)
		}
	}
}

func TestDeliveredHasNoNextStatus(t *testing.T) {

	_, ok := StatusDelivered.Next()
	assert.False(t, ok)

	_, ok = OrderStatus("bogus").Next()
	assert.False(t, ok)
}

func TestIsValidOrderStatus(t *testing.T) {

	assert.True(t, IsValidOrderStatus("pending"))
	assert.True(t, IsValidOrderStatus("out_for_delivery"))
	assert.False(t, IsValidOrderStatus("en_camino"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestOrderTotalAddsDeliveryFee(t *testing.T) {

	items := []OrderItem{
		{MenuItemID: 1, Name: "Burger", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
	}

	assert.Equal(t, "245.00", OrderTotal(items).StringFixed(2))
}

func TestOrderTotalIsDeterministic(t *testing.T) {

	items := []OrderItem{
		{MenuItemID: 1, Name: "Tacos", Quantity: 3, UnitPrice: decimal.RequireFromString("12.50")},
		{MenuItemID: 2, Name: "Horchata", Quantity: 1, UnitPrice: decimal.RequireFromString("4.25")},
	}
	reversed := []OrderItem{items[1], items[0]}

	assert.Equal(t, "86.75", OrderTotal(items).StringFixed(2))
	assert.Equal(t, OrderTotal(items).StringFixed(2), OrderTotal(reversed).StringFixed(2))
}

func TestOrderTotalOfNoItemsIsTheFee(t *testing.T) {

	assert.Equal(t, DeliveryFee.StringFixed(2), OrderTotal(nil).StringFixed(2))
}
