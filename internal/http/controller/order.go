package controller

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	paritos "paritos.app/delivery"
	"paritos.app/delivery/internal/entity"
	"paritos.app/delivery/internal/usecase/order"
)

type OrderController struct {
	uc *order.OrderUseCase
}

type OrderDto struct {
	ID               uint64         `json:"order_id"`
	Items            []OrderItemDto `json:"items"`
	Total            string         `json:"total"`
	Status           string         `json:"status"`
	CustomerID       uint64         `json:"customer_id"`
	CustomerName     string         `json:"customer_name"`
	CustomerAddress  string         `json:"customer_address"`
	CustomerLocation *GeoPointDto   `json:"customer_location,omitempty"`
	RestaurantID     uint64         `json:"restaurant_id"`
	CourierID        *uint64        `json:"courier_id"`
	Date             time.Time      `json:"date"`
}

type OrderItemDto struct {
	MenuItemID uint64 `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   uint32 `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
}

type GeoPointDto struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func NewOrderController(uc *order.OrderUseCase) OrderController {
	return OrderController{
		uc: uc,
	}
}

// ===================================
// ========== GET /orders ============
// ===================================
func (c *OrderController) GetAll(ctx echo.Context) error {

	statusParam := ctx.QueryParam("status")
	if statusParam != "" {
		orders, err := c.uc.AllByStatus(ctx.Request().Context(), entity.OrderStatus(statusParam))
		if err != nil {
			return err
		}

		return ctx.JSON(200, toOrderDtos(orders))
	}

	var limit int = 20
	var offset int = 0
	var err error

	limitParam := ctx.QueryParam("limit")
	if limitParam != "" {
		limit, err = strconv.Atoi(limitParam)
		if err != nil || limit < 0 || limit > math.MaxInt32 {
			return echo.NewHTTPError(400, "Invalid 'limit' param")
		}
	}

	offsetParam := ctx.QueryParam("offset")
	if offsetParam != "" {
		offset, err = strconv.Atoi(offsetParam)
		if err != nil || offset < 0 || offset > math.MaxInt32 {
			return echo.NewHTTPError(400, "Invalid 'offset' param")
		}
	}

	orders, err := c.uc.PaginatedGetAll(ctx.Request().Context(), int32(offset), int32(limit))
	if err != nil {
		return err
	}

	return ctx.JSON(200, toOrderDtos(orders))
}

// ===================================

// ====================================
// ========== POST /orders ============
// ====================================
type OrderCreateRequest struct {
	Items            []OrderItemCreateDto `json:"items"`
	CustomerID       uint64               `json:"customer_id"`
	CustomerName     string               `json:"customer_name"`
	CustomerAddress  string               `json:"customer_address"`
	CustomerLocation *GeoPointDto         `json:"customer_location"`
	RestaurantID     uint64               `json:"restaurant_id" validate:"required"`
}

type OrderItemCreateDto struct {
	MenuItemID uint64          `json:"menu_item_id" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	Quantity   uint32          `json:"quantity" validate:"required,min=1"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

func (c *OrderController) Create(ctx echo.Context) error {

	var req OrderCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	checkout := order.CheckoutDTO{
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		RestaurantID:    req.RestaurantID,
	}

	if req.CustomerLocation != nil {
		checkout.CustomerLocation = &order.GeoPointDTO{
			Lat: req.CustomerLocation.Lat,
			Lng: req.CustomerLocation.Lng,
		}
	}

	for _, item := range req.Items {
		checkout.Items = append(checkout.Items, order.CheckoutItemDTO{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	savedOrder, err := c.uc.Checkout(ctx.Request().Context(), checkout)
	if err != nil {
		return err
	}

	return ctx.JSON(200, toOrderDto(savedOrder))
}

// ====================================

// =============================================
// ========== GET /orders/:order_id ============
// =============================================
func (c *OrderController) GetById(ctx echo.Context) error {

	orderID, err := pathID(ctx, "order_id")
	if err != nil {
		return err
	}

	foundOrder, err := c.uc.GetById(ctx.Request().Context(), orderID)
	if err != nil {
		return err
	}

	return ctx.JSON(200, toOrderDto(foundOrder))
}

// =============================================

// =====================================================
// ========== POST /orders/:order_id/status ============
// =====================================================
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (c *OrderController) SetStatus(ctx echo.Context) error {

	orderID, err := pathID(ctx, "order_id")
	if err != nil {
		return err
	}

	var req OrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	updated, err := c.uc.Advance(ctx.Request().Context(), orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return err
	}

	return ctx.JSON(200, toOrderDto(updated))
}

// =====================================================

// ==========================================
// ========== POST /orders/accept ===========
// ==========================================
type OrderAcceptRequest struct {
	CourierID uint64   `json:"courier_id" validate:"required"`
	OrderIDs  []uint64 `json:"order_ids" validate:"required,min=1"`
}

type OrderAcceptResponse struct {
	Results []OrderAcceptResultDto `json:"results"`
}

type OrderAcceptResultDto struct {
	OrderID uint64          `json:"order_id"`
	Success bool            `json:"success"`
	Error   *AcceptErrorDto `json:"error,omitempty"`
	Order   *OrderDto       `json:"order,omitempty"`
}

type AcceptErrorDto struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *OrderController) Accept(ctx echo.Context) error {

	var req OrderAcceptRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	results, err := c.uc.Accept(ctx.Request().Context(), req.CourierID, req.OrderIDs)
	if err != nil {
		return err
	}

	res := OrderAcceptResponse{
		Results: []OrderAcceptResultDto{},
	}

	for _, result := range results {
		item := OrderAcceptResultDto{
			OrderID: result.OrderID,
			Success: result.Err == nil,
		}

		if result.Err != nil {
			item.Error = &AcceptErrorDto{
				Code:    paritos.ErrorCode(result.Err),
				Message: paritos.ErrorMessage(result.Err),
			}
		} else {
			dto := toOrderDto(result.Order)
			item.Order = &dto
		}

		res.Results = append(res.Results, item)
	}

	return ctx.JSON(200, res)
}

// ==========================================

// ============================================
// ========== POST /orders/complete ===========
// ============================================
type OrderCompleteRequest struct {
	OrderID   uint64 `json:"order_id" validate:"required"`
	CourierID uint64 `json:"courier_id"`
}

func (c *OrderController) Complete(ctx echo.Context) error {

	var req OrderCompleteRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	delivered, err := c.uc.Deliver(ctx.Request().Context(), req.OrderID, req.CourierID)
	if err != nil {
		return err
	}

	return ctx.JSON(200, toOrderDto(delivered))
}

// ============================================

func pathID(ctx echo.Context, name string) (uint64, error) {

	param := ctx.Param(name)

	id, err := strconv.Atoi(param)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, ":"+name+" must be valid int64")
	}

	return uint64(id), nil
}

func toOrderDto(o *entity.Order) OrderDto {

	items := []OrderItemDto{}
	for _, item := range o.Items {
		items = append(items, OrderItemDto{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.StringFixed(2),
		})
	}

	res := OrderDto{
		ID:              o.ID,
		Items:           items,
		Total:           o.Total.StringFixed(2),
		Status:          string(o.Status),
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		CustomerAddress: o.CustomerAddress,
		RestaurantID:    o.RestaurantID,
		CourierID:       o.CourierID,
		Date:            o.Date,
	}

	if o.CustomerLocation != nil {
		res.CustomerLocation = &GeoPointDto{
			Lat: o.CustomerLocation.Lat,
			Lng: o.CustomerLocation.Lng,
		}
	}

	return res
}

func toOrderDtos(orders *[]entity.Order) []OrderDto {

	res := []OrderDto{}
	for i := range *orders {
		res = append(res, toOrderDto(&(*orders)[i]))
	}

	return res
}
