package accept

import (
	"paritos.app/delivery/internal/entity"
)

// Result reports one order of a batch acceptance. Items succeed or
// fail independently.
type Result struct {
	OrderID       uint64
	Order         *entity.Order
	Notifications []entity.Notification
	Err           error
}
