package controller

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"paritos.app/delivery/internal/entity"
	"paritos.app/delivery/internal/usecase/notification"
)

type NotificationController struct {
	uc *notification.NotificationUseCase
}

type NotificationDto struct {
	ID       string    `json:"notification_id"`
	Audience string    `json:"audience"`
	OrderID  uint64    `json:"order_id"`
	Message  string    `json:"message"`
	Read     bool      `json:"read"`
	Date     time.Time `json:"date"`
}

func NewNotificationController(uc *notification.NotificationUseCase) NotificationController {
	return NotificationController{
		uc: uc,
	}
}

// =========================================
// ========== GET /notifications ===========
// =========================================
func (c *NotificationController) GetAll(ctx echo.Context) error {

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

	audience := entity.NotificationAudience(ctx.QueryParam("audience"))

	notifications, err := c.uc.PaginatedGetAll(ctx.Request().Context(), audience, int32(offset), int32(limit))
	if err != nil {
		return err
	}

	res := []NotificationDto{}
	for _, n := range *notifications {
		res = append(res, NotificationDto{
			ID:       n.ID,
			Audience: string(n.Audience),
			OrderID:  n.OrderID,
			Message:  n.Message,
			Read:     n.Read,
			Date:     n.Date,
		})
	}

	return ctx.JSON(200, res)
}

// =========================================

// ================================================================
// ========== POST /notifications/:notification_id/read ===========
// ================================================================
func (c *NotificationController) MarkRead(ctx echo.Context) error {

	notificationID := ctx.Param("notification_id")

	if err := c.uc.MarkRead(ctx.Request().Context(), notificationID); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ================================================================
