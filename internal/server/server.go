package server

import (
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/handler"
	"github.com/RGBwebstudio/ditku-travel-api-sub001/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// New assembles the echo instance with all middleware and routes mounted.
func New(log *zap.Logger, cartH *handler.CartHandler, orderH *handler.OrderHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))

	cartH.RegisterRoutes(e)
	orderH.RegisterRoutes(e)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return e
}
