package handler

import (
	"net/http"
	"time"

	"billsplit-service/pkg/logger"
	"billsplit-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RegisterMerchant handles merchant registration. The registering identity
// is always the authenticated caller.
func (h *Handler) RegisterMerchant(c echo.Context) error {
	log := logger.FromEcho(c)

	caller, ok := callerAddress(c)
	if !ok {
		log.Error("Failed to get wallet claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse merchant registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	merchant, err := h.svc.RegisterMerchant(caller, req.Name)
	if err != nil {
		log.Warn("Merchant registration rejected",
			zap.String("address", caller),
			zap.Error(err))
		prometheus.RecordProtocolError("register_merchant", errorKind(err))
		return c.JSON(statusForError(err), echo.Map{"error": clientMessage(err)})
	}

	prometheus.MerchantRegisterCounter.Inc()
	log.Info("Merchant registered",
		zap.String("address", merchant.Address),
		zap.String("name", merchant.Name))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Merchant registered successfully",
		"merchant": merchant,
	})
}

// GetMerchant retrieves merchant details by address
func (h *Handler) GetMerchant(c echo.Context) error {
	log := logger.FromEcho(c)

	address := c.Param("address")

	defer prometheus.TrackDBOperation("query")(time.Now())

	merchant, err := h.svc.GetMerchant(address)
	if err != nil {
		log.Debug("Merchant lookup failed", zap.String("address", address), zap.Error(err))
		return c.JSON(statusForError(err), echo.Map{"error": clientMessage(err)})
	}

	return c.JSON(http.StatusOK, echo.Map{"merchant": merchant})
}
