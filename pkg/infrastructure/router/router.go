package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"talenthui-go-backend/pkg/adapter/controller"
)

// Path of route
const (
	apiPath       = "/api"
	adminPath     = apiPath + "/admin"
	ImportCSVPath = adminPath + "/import-csv"
)

// Options of router
type Options struct {
	CORS bool
}

// New creates route endpoint
func New(ctrl controller.Controller, options Options) *echo.Echo {
	e := echo.New()
	e.Use(middleware.Recover())
	if options.CORS {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{
				echo.HeaderOrigin,
				echo.HeaderXRequestedWith,
				echo.HeaderContentType,
				echo.HeaderAccept,
				echo.HeaderAuthorization,
			},
		}))
	}

	e.GET("/health_check", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.POST(ImportCSVPath, ctrl.Import.ImportCSV)

	return e
}
