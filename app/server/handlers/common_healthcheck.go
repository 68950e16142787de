package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) HealthCheck(c echo.Context) error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}

	if err = sqlDB.PingContext(c.Request().Context()); err != nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.NoContent(http.StatusOK)
}
