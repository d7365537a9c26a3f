package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryFee is the fixed fee added to every order total.
var DeliveryFee = decimal.NewFromInt(45)

type Order struct {
	ID               uint64
	Items            []OrderItem
	Total            decimal.Decimal
	Status           OrderStatus
	CustomerID       uint64
	CustomerName     string
	CustomerAddress  string
	CustomerLocation *GeoPoint
	RestaurantID     uint64
	CourierID        *uint64
	Date             time.Time
}

type OrderItem struct {
	ID         uint64
	MenuItemID uint64
	Name       string
	Quantity   uint32
	UnitPrice  decimal.Decimal
}

type GeoPoint struct {
	Lat float64
	Lng float64
}

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusPreparing      OrderStatus = "preparing"
	StatusReadyForPickup OrderStatus = "ready_for_pickup"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
)

// OrderStatusSequence returns the lifecycle in order. Transitions only
// ever move one step forward through it.
func OrderStatusSequence() []OrderStatus {
	return []OrderStatus{
		StatusPending,
		StatusPreparing,
		StatusReadyForPickup,
		StatusOutForDelivery,
		StatusDelivered,
	}
}

func IsValidOrderStatus(s string) bool {
	for _, status := range OrderStatusSequence() {
		if string(status) == s {
			return true
		}
	}
	return false
}

// Next returns the following lifecycle status. The second value is
// false for delivered orders and unknown statuses.
func (s OrderStatus) Next() (OrderStatus, bool) {
	sequence := OrderStatusSequence()
	for i, status := range sequence {
		if status == s && i+1 < len(sequence) {
			return sequence[i+1], true
		}
	}
	return "", false
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	next, ok := s.Next()
	return ok && next == target
}

// OrderTotal computes sum(price * qty) for the items plus the fixed
// delivery fee.
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total.Add(DeliveryFee)
}
