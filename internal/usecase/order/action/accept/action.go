package accept

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/manager"
	paritos "paritos.app/delivery"
	"paritos.app/delivery/internal/entity"
	"paritos.app/delivery/internal/repository/repositories"
)

type ActionAcceptOrders struct {
	trm              *manager.Manager
	OrderRepo        *repositories.OrderRepo
	CourierRepo      *repositories.CourierRepo
	NotificationRepo *repositories.NotificationRepo
}

func New(
	trm *manager.Manager,
	OrderRepo *repositories.OrderRepo,
	CourierRepo *repositories.CourierRepo,
	NotificationRepo *repositories.NotificationRepo,
) *ActionAcceptOrders {
	return &ActionAcceptOrders{
		trm:              trm,
		OrderRepo:        OrderRepo,
		CourierRepo:      CourierRepo,
		NotificationRepo: NotificationRepo,
	}
}

// Accept runs the ready_for_pickup -> out_for_delivery transition for
// each order in its own transaction. The courier must be available for
// the first order; once an item of this batch succeeds the courier is
// delivering, which stays acceptable for the rest of the batch. Any
// other status (gone offline mid-batch, or delivering on an earlier,
// separate acceptance) rejects the item.
func (a *ActionAcceptOrders) Accept(ctx context.Context, courierID uint64, orderIDs []uint64) []Result {

	results := make([]Result, 0, len(orderIDs))
	deliveringInBatch := false

	for _, orderID := range orderIDs {
		order, notifications, err := a.acceptOne(ctx, courierID, orderID, deliveringInBatch)
		if err == nil {
			deliveringInBatch = true
		}

		results = append(results, Result{
			OrderID:       orderID,
			Order:         order,
			Notifications: notifications,
			Err:           err,
		})
	}

	return results
}

func (a *ActionAcceptOrders) acceptOne(ctx context.Context, courierID, orderID uint64, allowDelivering bool) (*entity.Order, []entity.Notification, error) {
	op := "ActionAcceptOrders.acceptOne"

	var accepted *entity.Order
	var pair []entity.Notification

	err := a.trm.Do(ctx, func(ctx context.Context) error {
		courier, err := a.CourierRepo.FindById(ctx, courierID)
		if err != nil {
			return err
		}

		available := courier.Status == entity.CourierAvailable ||
			(allowDelivering && courier.Status == entity.CourierDelivering)
		if !available {
			return &paritos.Error{
				Op:      op,
				Code:    paritos.ECOURIERUNAVAILABLE,
				Message: "courier is not available for new deliveries",
				Fields: map[string]interface{}{
					"courier_id":     courier.ID,
					"courier_status": courier.Status,
				},
			}
		}

		order, err := a.OrderRepo.FindById(ctx, orderID)
		if err != nil {
			return err
		}

		if order.Status != entity.StatusReadyForPickup {
			return &paritos.Error{
				Op:      op,
				Code:    paritos.EINVALIDTRANSITION,
				Message: "order is not ready for pickup",
				Fields: map[string]interface{}{
					"order_id": order.ID,
					"from":     order.Status,
				},
			}
		}

		// Conditional update: fails with already_assigned if another
		// courier took the order between the read above and here.
		if err := a.OrderRepo.AssignCourier(ctx, order.ID, courierID); err != nil {
			return err
		}

		if courier.Status != entity.CourierDelivering {
			if err := a.CourierRepo.SetStatus(ctx, courierID, entity.CourierDelivering); err != nil {
				return err
			}
		}

		assignee := courierID
		order.Status = entity.StatusOutForDelivery
		order.CourierID = &assignee

		pair = entity.NewOrderNotificationPair(order, entity.StatusOutForDelivery, time.Now().UTC())
		if err := a.NotificationRepo.BatchCreate(ctx, pair); err != nil {
			return err
		}

		accepted = order

		return nil
	})
	if err != nil {
		return nil, nil, paritos.OpError(op, err)
	}

	return accepted, pair, nil
}
