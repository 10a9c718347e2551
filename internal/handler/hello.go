package handler

import (
	"net/http"

	"billsplit-service/pkg/logger"

	"github.com/labstack/echo/v4"
)

func Hello(c echo.Context) error {
	log := logger.FromEcho(c)
	log.Info("Hello from billsplit-service")
	return c.JSON(http.StatusOK, echo.Map{"message": "hello from billsplit"})
}

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": "billsplit-service",
	})
}
