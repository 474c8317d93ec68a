package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"talenthui-go-backend/pkg/adapter/controller"
	"talenthui-go-backend/pkg/infrastructure/router"
)

type noopImport struct{}

func (noopImport) ImportCSV(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRouter(t *testing.T) {
	ctrl := controller.Controller{Import: noopImport{}}
	e := router.New(ctrl, router.Options{CORS: true})

	t.Run("Health check responds ok", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health_check", nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})

	t.Run("Import route is registered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, router.ImportCSVPath, nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("CORS preflight is allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, router.ImportCSVPath, nil)
		req.Header.Set(echo.HeaderOrigin, "https://example.com")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})
}
