package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderNotificationPair(t *testing.T) {

	order := &Order{ID: 42, CustomerName: "Ana"}
	now := time.Now().UTC()

	pair := NewOrderNotificationPair(order, StatusOutForDelivery, now)
	require.Len(t, pair, 2)

	assert.Equal(t, AudienceCustomer, pair[0].Audience)
	assert.Equal(t, AudienceAdmin, pair[1].Audience)
	assert.NotEqual(t, pair[0].ID, pair[1].ID)

	for _, n := range pair {
		assert.Equal(t, uint64(42), n.OrderID)
		assert.Contains(t, n.Message, "#42")
		assert.Equal(t, now, n.Date)
		assert.False(t, n.Read)
	}

	assert.Contains(t, pair[1].Message, "Ana")
}

func TestNotificationPairForEveryLifecycleStatus(t *testing.T) {

	order := &Order{ID: 7, CustomerName: "Luis"}

	for _, status := range OrderStatusSequence() {
		pair := NewOrderNotificationPair(order, status, time.Now())
		assert.Len(t, pair, 2, string(status))
	}
}

func TestNoPairForUnknownStatus(t *testing.T) {

	assert.Nil(t, NewOrderNotificationPair(&Order{ID: 1}, OrderStatus("bogus"), time.Now()))
}
