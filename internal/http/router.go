package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"paritos.app/delivery/internal/http/controller"
)

type Router struct {
	Controllers Controllers
}

type Controllers struct {
	CourierController      controller.CourierController
	OrderController        controller.OrderController
	NotificationController controller.NotificationController
}

func NewRouter(cs Controllers) *Router {
	return &Router{
		Controllers: cs,
	}
}

func (r Router) SetupRoutes(e *echo.Echo) {

	e.GET("/ping", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "pong")
	})

	// courier methods
	e.GET("/couriers/assignments", r.Controllers.CourierController.Assignments, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.GET("/couriers", r.Controllers.CourierController.GetAll, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.POST("/couriers", r.Controllers.CourierController.Create, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.GET("/couriers/:courier_id", r.Controllers.CourierController.GetById, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.POST("/couriers/:courier_id/status", r.Controllers.CourierController.SetStatus, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.DELETE("/couriers/:courier_id", r.Controllers.CourierController.Delete, middleware.RateLimiterWithConfig(RatelimiterConfig()))

	// courier application methods
	e.POST("/couriers/applications", r.Controllers.CourierController.Apply, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.GET("/couriers/applications", r.Controllers.CourierController.PendingApplications, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.POST("/couriers/applications/:application_id/approve", r.Controllers.CourierController.Approve, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.POST("/couriers/applications/:application_id/reject", r.Controllers.CourierController.Reject, middleware.RateLimiterWithConfig(RatelimiterConfig()))

	// order methods
	e.GET("/orders", r.Controllers.OrderController.GetAll, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.POST("/orders", r.Controllers.OrderController.Create, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.POST("/orders/accept", r.Controllers.OrderController.Accept)
	e.POST("/orders/complete", r.Controllers.OrderController.Complete, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.GET("/orders/:order_id", r.Controllers.OrderController.GetById, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.POST("/orders/:order_id/status", r.Controllers.OrderController.SetStatus, middleware.RateLimiterWithConfig(RatelimiterConfig()))

	// notification methods
	e.GET("/notifications", r.Controllers.NotificationController.GetAll, middleware.RateLimiterWithConfig(RatelimiterConfig()))
	e.POST("/notifications/:notification_id/read", r.Controllers.NotificationController.MarkRead, middleware.RateLimiterWithConfig(RatelimiterConfig()))
}

func RatelimiterConfig() middleware.RateLimiterConfig {
	return middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: 10, Burst: 0, ExpiresIn: time.Second},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, nil)
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, nil)
		},
	}
}
