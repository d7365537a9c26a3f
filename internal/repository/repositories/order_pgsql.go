package repositories

import (
	"context"
	"errors"
	"time"

	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	paritos "paritos.app/delivery"
	"paritos.app/delivery/internal/entity"
	"paritos.app/delivery/pkg/gorm/types"
)

// @migration
type Order struct {
	ID               uint64 `gorm:"primaryKey"`
	Status           string `gorm:"not null;index"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2)"`
	CustomerID       uint64
	CustomerName     string
	CustomerAddress  string
	CustomerLocation *types.Point
	RestaurantID     uint64
	CourierID        *uint64 `gorm:"index"`
	Date             time.Time
	Items            []OrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// @migration
type OrderItem struct {
	ID         uint64 `gorm:"primaryKey"`
	OrderID    uint64
	Order      *Order `gorm:"foreignKey:OrderID"`
	MenuItemID uint64
	Name       string
	Quantity   uint32
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2)"`
}

type OrderRepo struct {
	gorm   *gorm.DB
	getter *trmgorm.CtxGetter
}

func NewOrderRepo(grm *gorm.DB, getter *trmgorm.CtxGetter) *OrderRepo {
	return &OrderRepo{
		gorm:   grm,
		getter: getter,
	}
}

func (s *OrderRepo) db(ctx context.Context) *gorm.DB {
	return s.getter.DefaultTrOrDB(ctx, s.gorm)
}

type OrderToCreateDTO struct {
	Items            []OrderItemToCreateDTO
	Total            decimal.Decimal
	CustomerID       uint64
	CustomerName     string
	CustomerAddress  string
	CustomerLocation *entity.GeoPoint
	RestaurantID     uint64
	Date             time.Time
}

type OrderItemToCreateDTO struct {
	MenuItemID uint64
	Name       string
	Quantity   uint32
	UnitPrice  decimal.Decimal
}

func (s *OrderRepo) Create(ctx context.Context, newOrder OrderToCreateDTO) (*entity.Order, error) {

	order := Order{
		Status:          string(entity.StatusPending),
		Total:           newOrder.Total,
		CustomerID:      newOrder.CustomerID,
		CustomerName:    newOrder.CustomerName,
		CustomerAddress: newOrder.CustomerAddress,
		RestaurantID:    newOrder.RestaurantID,
		Date:            newOrder.Date,
	}

	if newOrder.CustomerLocation != nil {
		location := types.NewPoint(newOrder.CustomerLocation.Lat, newOrder.CustomerLocation.Lng)
		order.CustomerLocation = &location
	}

	for _, item := range newOrder.Items {
		order.Items = append(order.Items, OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	if err := s.db(ctx).Create(&order).Error; err != nil {
		return nil, persistenceError(err)
	}

	res := toOrderEntity(order)

	return &res, nil
}

func (s *OrderRepo) FindById(ctx context.Context, id uint64) (*entity.Order, error) {

	var order Order

	err := s.db(ctx).Model(&Order{}).Preload("Items").First(&order, int(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("order not found", err)
		}

		return nil, persistenceError(err)
	}

	res := toOrderEntity(order)

	return &res, nil
}

func (s *OrderRepo) PaginatedFetchAll(ctx context.Context, offset, limit int32) (*[]entity.Order, error) {

	orders := []Order{}

	err := s.db(ctx).Model(&Order{}).Preload("Items").
		Order("date DESC").
		Limit(int(limit)).Offset(int(offset)).
		Find(&orders).Error
	if err != nil {
		return nil, persistenceError(err)
	}

	res := []entity.Order{}
	for _, o := range orders {
		res = append(res, toOrderEntity(o))
	}

	return &res, nil
}

func (s *OrderRepo) AllByStatus(ctx context.Context, status entity.OrderStatus) (*[]entity.Order, error) {

	orders := []Order{}

	err := s.db(ctx).Model(&Order{}).Preload("Items").
		Where("status = ?", string(status)).
		Order("date ASC").
		Find(&orders).Error
	if err != nil {
		return nil, persistenceError(err)
	}

	res := []entity.Order{}
	for _, o := range orders {
		res = append(res, toOrderEntity(o))
	}

	return &res, nil
}

// ActiveCountByCourierId counts the courier's orders still out for
// delivery.
func (s *OrderRepo) ActiveCountByCourierId(ctx context.Context, courierID uint64) (int64, error) {

	var count int64

	err := s.db(ctx).Model(&Order{}).
		Where("courier_id = ? AND status = ?", courierID, string(entity.StatusOutForDelivery)).
		Count(&count).Error
	if err != nil {
		return 0, persistenceError(err)
	}

	return count, nil
}

func (s *OrderRepo) UpdateStatus(ctx context.Context, id uint64, status entity.OrderStatus) error {

	res := s.db(ctx).Model(&Order{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return persistenceError(res.Error)
	}

	if res.RowsAffected == 0 {
		return notFoundError("order not found", nil)
	}

	return nil
}

// AssignCourier moves a ready order out for delivery, guarded against a
// concurrent acceptance: the row must still be unassigned at commit
// time. Callers verify the order was ready beforehand, so zero affected
// rows means another courier won the race.
func (s *OrderRepo) AssignCourier(ctx context.Context, orderID, courierID uint64) error {

	res := s.db(ctx).Model(&Order{}).
		Where("id = ? AND status = ? AND courier_id IS NULL", orderID, string(entity.StatusReadyForPickup)).
		Updates(map[string]interface{}{
			"status":     string(entity.StatusOutForDelivery),
			"courier_id": courierID,
		})
	if res.Error != nil {
		return persistenceError(res.Error)
	}

	if res.RowsAffected == 0 {
		return &paritos.Error{
			Code:    paritos.EALREADYASSIGNED,
			Message: "order is already assigned to a courier",
			Fields: map[string]interface{}{
				"order_id":   orderID,
				"courier_id": courierID,
			},
		}
	}

	return nil
}

func toOrderEntity(o Order) entity.Order {

	items := []entity.OrderItem{}
	for _, item := range o.Items {
		items = append(items, entity.OrderItem{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	res := entity.Order{
		ID:              o.ID,
		Items:           items,
		Total:           o.Total,
		Status:          entity.OrderStatus(o.Status),
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		CustomerAddress: o.CustomerAddress,
		RestaurantID:    o.RestaurantID,
		CourierID:       o.CourierID,
		Date:            o.Date,
	}

	if o.CustomerLocation != nil {
		res.CustomerLocation = &entity.GeoPoint{
			Lat: o.CustomerLocation.Lat,
			Lng: o.CustomerLocation.Lng,
		}
	}

	return res
}
