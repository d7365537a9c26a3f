package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID       string
	Audience NotificationAudience
	OrderID  uint64
	Message  string
	Read     bool
	Date     time.Time
}

type NotificationAudience string

const (
	AudienceCustomer NotificationAudience = "customer"
	AudienceAdmin    NotificationAudience = "admin"
)

type statusMessages struct {
	Customer string
	Admin    string
}

var orderStatusMessages = map[OrderStatus]statusMessages{
	StatusPending: {
		Customer: "Your order #%d has been placed.",
		Admin:    "New order #%d received from %s.",
	},
	StatusPreparing: {
		Customer: "Your order #%d is being prepared.",
		Admin:    "Order #%d from %s is now being prepared.",
	},
	StatusReadyForPickup: {
		Customer: "Your order #%d is ready and waiting for a courier.",
		Admin:    "Order #%d from %s is ready for pickup.",
	},
	StatusOutForDelivery: {
		Customer: "Your order #%d is on its way!",
		Admin:    "Order #%d from %s was accepted by a courier.",
	},
	StatusDelivered: {
		Customer: "Your order #%d has been delivered. Enjoy!",
		Admin:    "Order #%d from %s was delivered.",
	},
}

// NewOrderNotificationPair builds the customer-facing and admin-facing
// notifications for an order entering the given status.
func NewOrderNotificationPair(order *Order, status OrderStatus, now time.Time) []Notification {
	messages, ok := orderStatusMessages[status]
	if !ok {
		return nil
	}

	return []Notification{
		{
			ID:       uuid.New().String(),
			Audience: AudienceCustomer,
			OrderID:  order.ID,
			Message:  fmt.Sprintf(messages.Customer, order.ID),
			Date:     now,
		},
		{
			ID:       uuid.New().String(),
			Audience: AudienceAdmin,
			OrderID:  order.ID,
			Message:  fmt.Sprintf(messages.Admin, order.ID, order.CustomerName),
			Date:     now,
		},
	}
}
