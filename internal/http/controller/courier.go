package controller

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"paritos.app/delivery/internal/entity"
	"paritos.app/delivery/internal/usecase/courier"
)

type CourierController struct {
	uc *courier.CourierUseCase
}

type CourierDto struct {
	CourierId   uint64  `json:"courier_id"`
	UserId      uint64  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Status      string  `json:"status"`
	Rating      float64 `json:"rating"`
	Vehicle     string  `json:"vehicle"`
}

type ApplicationDto struct {
	ApplicationId uint64    `json:"application_id"`
	UserId        uint64    `json:"user_id"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone"`
	Vehicle       string    `json:"vehicle"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
}

func NewCourierController(uc *courier.CourierUseCase) CourierController {
	return CourierController{
		uc: uc,
	}
}

// ===============================================
// ========== GET /couriers/assignments ==========
// ===============================================
type CourierAssignmentsGroupItem struct {
	CourierId uint64     `json:"courier_id"`
	Orders    []OrderDto `json:"orders"`
}

func (c *CourierController) Assignments(ctx echo.Context) error {

	assignments, err := c.uc.Assignments(ctx.Request().Context())
	if err != nil {
		return err
	}

	res := []CourierAssignmentsGroupItem{}
	for _, group := range assignments {

		item := CourierAssignmentsGroupItem{
			CourierId: group.CourierID,
			Orders:    []OrderDto{},
		}
		for i := range group.Orders {
			item.Orders = append(item.Orders, toOrderDto(&group.Orders[i]))
		}

		res = append(res, item)
	}

	return ctx.JSON(200, res)
}

// ===============================================

// ===================================
// ========== GET /couriers ==========
// ===================================
type CourierGetAllReponse struct {
	Couriers []CourierDto `json:"couriers"`
	Offset   int32        `json:"offset"`
	Limit    int32        `json:"limit"`
}

func (c *CourierController) GetAll(ctx echo.Context) error {

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

	couriers, err := c.uc.PaginatedGetAll(ctx.Request().Context(), int32(offset), int32(limit))
	if err != nil {
		return err
	}

	res := CourierGetAllReponse{
		Couriers: []CourierDto{},
		Offset:   int32(offset),
		Limit:    int32(limit),
	}
	for _, cr := range *couriers {
		res.Couriers = append(res.Couriers, toCourierDto(cr))
	}

	return ctx.JSON(200, res)
}

// ===================================

// ====================================
// ========== POST /couriers ==========
// ====================================
type CourierCreateRequest struct {
	UserID      uint64  `json:"user_id" validate:"required"`
	DisplayName string  `json:"display_name" validate:"required"`
	Vehicle     string  `json:"vehicle" validate:"required"`
	Rating      float64 `json:"rating"`
}

func (c *CourierController) Create(ctx echo.Context) error {

	var req CourierCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	savedCourier, err := c.uc.Create(ctx.Request().Context(), courier.CourierToCreateDTO{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Vehicle:     req.Vehicle,
		Rating:      req.Rating,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(200, toCourierDto(*savedCourier))
}

// ====================================

// ===============================================
// ========== GET /couriers/:courier_id ==========
// ===============================================
func (c *CourierController) GetById(ctx echo.Context) error {

	courierID, err := pathID(ctx, "courier_id")
	if err != nil {
		return err
	}

	foundCourier, err := c.uc.GetById(ctx.Request().Context(), courierID)
	if err != nil {
		return err
	}

	return ctx.JSON(200, toCourierDto(*foundCourier))
}

// ===============================================

// =======================================================
// ========== POST /couriers/:courier_id/status ==========
// =======================================================
type CourierStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (c *CourierController) SetStatus(ctx echo.Context) error {

	courierID, err := pathID(ctx, "courier_id")
	if err != nil {
		return err
	}

	var req CourierStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	updated, err := c.uc.SetAvailability(ctx.Request().Context(), courierID, entity.CourierStatus(req.Status))
	if err != nil {
		return err
	}

	return ctx.JSON(200, toCourierDto(*updated))
}

// =======================================================

// ==================================================
// ========== DELETE /couriers/:courier_id ==========
// ==================================================
func (c *CourierController) Delete(ctx echo.Context) error {

	courierID, err := pathID(ctx, "courier_id")
	if err != nil {
		return err
	}

	if err := c.uc.Delete(ctx.Request().Context(), courierID); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ==================================================

// =================================================
// ========== POST /couriers/applications ==========
// =================================================
type ApplicationSubmitRequest struct {
	UserID   uint64 `json:"user_id" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Vehicle  string `json:"vehicle" validate:"required"`
}

func (c *CourierController) Apply(ctx echo.Context) error {

	var req ApplicationSubmitRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	savedApplication, err := c.uc.Apply(ctx.Request().Context(), courier.ApplicationToSubmitDTO{
		UserID:   req.UserID,
		FullName: req.FullName,
		Phone:    req.Phone,
		Vehicle:  req.Vehicle,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(200, toApplicationDto(*savedApplication))
}

// =================================================

// ================================================
// ========== GET /couriers/applications ==========
// ================================================
func (c *CourierController) PendingApplications(ctx echo.Context) error {

	applications, err := c.uc.PendingApplications(ctx.Request().Context())
	if err != nil {
		return err
	}

	res := []ApplicationDto{}
	for _, a := range *applications {
		res = append(res, toApplicationDto(a))
	}

	return ctx.JSON(200, res)
}

// ================================================

// ===========================================================================
// ========== POST /couriers/applications/:application_id/approve ============
// ===========================================================================
func (c *CourierController) Approve(ctx echo.Context) error {

	applicationID, err := pathID(ctx, "application_id")
	if err != nil {
		return err
	}

	savedCourier, err := c.uc.Approve(ctx.Request().Context(), applicationID)
	if err != nil {
		return err
	}

	return ctx.JSON(200, toCourierDto(*savedCourier))
}

// ===========================================================================

// ==========================================================================
// ========== POST /couriers/applications/:application_id/reject ============
// ==========================================================================
func (c *CourierController) Reject(ctx echo.Context) error {

	applicationID, err := pathID(ctx, "application_id")
	if err != nil {
		return err
	}

	if err := c.uc.Reject(ctx.Request().Context(), applicationID); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ==========================================================================

func toCourierDto(c entity.Courier) CourierDto {
	return CourierDto{
		CourierId:   c.ID,
		UserId:      c.UserID,
		DisplayName: c.DisplayName,
		Status:      string(c.Status),
		Rating:      c.Rating,
		Vehicle:     string(c.Vehicle),
	}
}

func toApplicationDto(a entity.CourierApplication) ApplicationDto {
	return ApplicationDto{
		ApplicationId: a.ID,
		UserId:        a.UserID,
		FullName:      a.FullName,
		Phone:         a.Phone,
		Vehicle:       string(a.Vehicle),
		Status:        string(a.Status),
		Date:          a.Date,
	}
}
