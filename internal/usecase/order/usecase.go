package order

import (
	"context"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"gopkg.in/go-playground/validator.v9"
	paritos "paritos.app/delivery"
	"paritos.app/delivery/internal/entity"
	"paritos.app/delivery/internal/notifier"
	"paritos.app/delivery/internal/repository/repositories"
	"paritos.app/delivery/internal/usecase/order/action/accept"
	validatations "paritos.app/delivery/pkg/validations"
)

// OrderUseCase coordinates the order lifecycle: creation, kitchen
// transitions, courier acceptance and delivery completion. It keeps
// courier availability consistent with the orders referencing it.
type OrderUseCase struct {
	trm              *manager.Manager
	validator        *validator.Validate
	OrderRepo        *repositories.OrderRepo
	CourierRepo      *repositories.CourierRepo
	NotificationRepo *repositories.NotificationRepo
	emitter          notifier.Emitter
}

func New(
	trm *manager.Manager,
	ordrepo *repositories.OrderRepo,
	currepo *repositories.CourierRepo,
	notifrepo *repositories.NotificationRepo,
	emitter notifier.Emitter,
) *OrderUseCase {

	v := validator.New()
	v.RegisterValidation("geo_lat", validatations.Latitude)
	v.RegisterValidation("geo_lng", validatations.Longitude)

	return &OrderUseCase{
		trm:              trm,
		OrderRepo:        ordrepo,
		CourierRepo:      currepo,
		NotificationRepo: notifrepo,
		emitter:          emitter,
		validator:        v,
	}
}

// Checkout creates a pending order from the customer's cart. The
// caller owns its cart state and clears it after a successful return.
func (uc *OrderUseCase) Checkout(ctx context.Context, checkout CheckoutDTO) (*entity.Order, error) {
	op := "OrderUseCase.Checkout"

	if len(checkout.Items) == 0 {
		return nil, &paritos.Error{Op: op, Code: paritos.EEMPTYCART, Message: "cart is empty"}
	}

	if checkout.CustomerID == 0 || checkout.CustomerName == "" || checkout.CustomerAddress == "" {
		return nil, &paritos.Error{Op: op, Code: paritos.EMISSINGPROFILE, Message: "customer profile is incomplete"}
	}

	if err := uc.validator.Struct(checkout); err != nil {
		return nil, paritos.ErrorWithCode(paritos.OpError(op, err), paritos.EINVALID)
	}

	items := []entity.OrderItem{}
	toCreate := []repositories.OrderItemToCreateDTO{}
	for _, item := range checkout.Items {
		if item.UnitPrice.IsNegative() {
			return nil, &paritos.Error{Op: op, Code: paritos.EINVALID, Message: "item price cannot be negative"}
		}

		items = append(items, entity.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
		toCreate = append(toCreate, repositories.OrderItemToCreateDTO{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	now := time.Now().UTC()

	var location *entity.GeoPoint
	if checkout.CustomerLocation != nil {
		location = &entity.GeoPoint{
			Lat: checkout.CustomerLocation.Lat,
			Lng: checkout.CustomerLocation.Lng,
		}
	}

	var saved *entity.Order
	var pair []entity.Notification

	err := uc.trm.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, err = uc.OrderRepo.Create(ctx, repositories.OrderToCreateDTO{
			Items:            toCreate,
			Total:            entity.OrderTotal(items),
			CustomerID:       checkout.CustomerID,
			CustomerName:     checkout.CustomerName,
			CustomerAddress:  checkout.CustomerAddress,
			CustomerLocation: location,
			RestaurantID:     checkout.RestaurantID,
			Date:             now,
		})
		if err != nil {
			return err
		}

		pair = entity.NewOrderNotificationPair(saved, entity.StatusPending, now)

		return uc.NotificationRepo.BatchCreate(ctx, pair)
	})
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	uc.emit(ctx, pair)

	return saved, nil
}

// Advance moves an order one step forward in the lifecycle. Kitchen
// transitions come from the restaurant view; delivered doubles as the
// admin override for completion. Going out for delivery always runs
// through Accept.
func (uc *OrderUseCase) Advance(ctx context.Context, orderID uint64, target entity.OrderStatus) (*entity.Order, error) {
	op := "OrderUseCase.Advance"

	if !entity.IsValidOrderStatus(string(target)) {
		return nil, &paritos.Error{Op: op, Code: paritos.EINVALID, Message: "unknown order status"}
	}

	var updated *entity.Order
	var pair []entity.Notification

	err := uc.trm.Do(ctx, func(ctx context.Context) error {
		order, err := uc.OrderRepo.FindById(ctx, orderID)
		if err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(target) {
			return &paritos.Error{
				Op:      op,
				Code:    paritos.EINVALIDTRANSITION,
				Message: "order status can only advance to the next lifecycle step",
				Fields: map[string]interface{}{
					"order_id": order.ID,
					"from":     order.Status,
					"to":       target,
				},
			}
		}

		switch target {
		case entity.StatusPreparing, entity.StatusReadyForPickup:
			if err := uc.OrderRepo.UpdateStatus(ctx, order.ID, target); err != nil {
				return err
			}
			order.Status = target

		case entity.StatusOutForDelivery:
			return &paritos.Error{
				Op:      op,
				Code:    paritos.EINVALID,
				Message: "orders go out for delivery through courier acceptance",
			}

		case entity.StatusDelivered:
			if err := uc.completeDelivery(ctx, order); err != nil {
				return err
			}
		}

		pair = entity.NewOrderNotificationPair(order, target, time.Now().UTC())
		if err := uc.NotificationRepo.BatchCreate(ctx, pair); err != nil {
			return err
		}

		updated = order

		return nil
	})
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	uc.emit(ctx, pair)

	return updated, nil
}

// Accept processes a courier's batch acceptance of ready orders. Items
// are independent: each runs in its own transaction and failures are
// reported per order, never rolling back earlier successes.
func (uc *OrderUseCase) Accept(ctx context.Context, courierID uint64, orderIDs []uint64) ([]accept.Result, error) {
	op := "OrderUseCase.Accept"

	if courierID == 0 || len(orderIDs) == 0 {
		return nil, &paritos.Error{Op: op, Code: paritos.EINVALID, Message: "courier and at least one order are required"}
	}

	action := accept.New(uc.trm, uc.OrderRepo, uc.CourierRepo, uc.NotificationRepo)

	results := action.Accept(ctx, courierID, orderIDs)
	for _, r := range results {
		if r.Err == nil {
			uc.emit(ctx, r.Notifications)
		}
	}

	return results, nil
}

// Deliver completes an out-for-delivery order. A non-zero courierID
// must match the assignee; admins pass zero to override.
func (uc *OrderUseCase) Deliver(ctx context.Context, orderID, courierID uint64) (*entity.Order, error) {
	op := "OrderUseCase.Deliver"

	var updated *entity.Order
	var pair []entity.Notification

	err := uc.trm.Do(ctx, func(ctx context.Context) error {
		order, err := uc.OrderRepo.FindById(ctx, orderID)
		if err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(entity.StatusDelivered) {
			return &paritos.Error{
				Op:      op,
				Code:    paritos.EINVALIDTRANSITION,
				Message: "only orders out for delivery can be delivered",
				Fields: map[string]interface{}{
					"order_id": order.ID,
					"from":     order.Status,
				},
			}
		}

		if courierID != 0 && (order.CourierID == nil || *order.CourierID != courierID) {
			return &paritos.Error{
				Op:      op,
				Code:    paritos.EINVALID,
				Message: "order is assigned to another courier",
				Fields: map[string]interface{}{
					"order_id":   order.ID,
					"courier_id": courierID,
				},
			}
		}

		if err := uc.completeDelivery(ctx, order); err != nil {
			return err
		}

		pair = entity.NewOrderNotificationPair(order, entity.StatusDelivered, time.Now().UTC())
		if err := uc.NotificationRepo.BatchCreate(ctx, pair); err != nil {
			return err
		}

		updated = order

		return nil
	})
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	uc.emit(ctx, pair)

	return updated, nil
}

// completeDelivery marks the order delivered and re-evaluates the
// courier: no remaining active assignment frees a delivering courier.
// A manually offline courier stays offline.
func (uc *OrderUseCase) completeDelivery(ctx context.Context, order *entity.Order) error {

	if err := uc.OrderRepo.UpdateStatus(ctx, order.ID, entity.StatusDelivered); err != nil {
		return err
	}
	order.Status = entity.StatusDelivered

	// The courier reference survives delivery for the history views.
	if order.CourierID == nil {
		return nil
	}

	active, err := uc.OrderRepo.ActiveCountByCourierId(ctx, *order.CourierID)
	if err != nil {
		return err
	}
	if active > 0 {
		return nil
	}

	courier, err := uc.CourierRepo.FindById(ctx, *order.CourierID)
	if err != nil {
		return err
	}

	if courier.Status == entity.CourierDelivering {
		return uc.CourierRepo.SetStatus(ctx, courier.ID, entity.CourierAvailable)
	}

	return nil
}

func (uc *OrderUseCase) GetById(ctx context.Context, id uint64) (*entity.Order, error) {
	op := "OrderUseCase.GetById"

	order, err := uc.OrderRepo.FindById(ctx, id)
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	return order, nil
}

func (uc *OrderUseCase) PaginatedGetAll(ctx context.Context, offset, limit int32) (*[]entity.Order, error) {
	op := "OrderUseCase.PaginatedGetAll"

	orders, err := uc.OrderRepo.PaginatedFetchAll(ctx, offset, limit)
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	return orders, nil
}

func (uc *OrderUseCase) AllByStatus(ctx context.Context, status entity.OrderStatus) (*[]entity.Order, error) {
	op := "OrderUseCase.AllByStatus"

	if !entity.IsValidOrderStatus(string(status)) {
		return nil, &paritos.Error{Op: op, Code: paritos.EINVALID, Message: "unknown order status"}
	}

	orders, err := uc.OrderRepo.AllByStatus(ctx, status)
	if err != nil {
		return nil, paritos.OpError(op, err)
	}

	return orders, nil
}

// emit forwards stored notifications to the emitter, fire-and-forget.
func (uc *OrderUseCase) emit(ctx context.Context, notifications []entity.Notification) {
	if uc.emitter == nil {
		return
	}

	for _, n := range notifications {
		_ = uc.emitter.Emit(ctx, n)
	}
}
