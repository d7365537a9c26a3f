package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gopkg.in/go-playground/validator.v9"
	paritos "paritos.app/delivery"
	"paritos.app/delivery/config"
)

func NewHttpServer(conf config.AppConfig) *echo.Echo {
	e := echo.New()

	e.Validator = &CustomValidator{Validator: validator.New()}
	e.HTTPErrorHandler = HttpErrorHandler

	// setup middlewares
	if conf.Env != "test" {
		e.Use(middleware.RateLimiterWithConfig(RatelimiterConfig()))
	}

	return e
}

func HttpErrorHandler(err error, c echo.Context) {

	if c.Response().Committed {
		return
	}

	c.Logger().Error(err)

	var appErr *paritos.Error
	if errors.As(err, &appErr) {
		httpCode := paritos.ErrCodeToHTTPStatus(appErr)
		message := paritos.DefaultErrorMessage

		if httpCode < 500 {
			message = paritos.ErrorMessage(appErr)
		}

		c.JSON(httpCode, map[string]string{
			"code":    paritos.ErrorCode(appErr),
			"message": message,
		})
		return
	}

	var echoError *echo.HTTPError
	if errors.As(err, &echoError) {
		c.JSON(echoError.Code, echoError.Message)
		return
	}

	c.JSON(
		http.StatusInternalServerError,
		http.StatusText(http.StatusInternalServerError),
	)
}
