package handler

import (
	"net/http"
	"time"

	"billsplit-service/pkg/logger"
	"billsplit-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SetBlacklist toggles a merchant's blacklist flag. Owner authorization is
// enforced by the service against the recorded contract owner.
func (h *Handler) SetBlacklist(c echo.Context) error {
	log := logger.FromEcho(c)

	caller, ok := callerAddress(c)
	if !ok {
		log.Error("Failed to get wallet claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	address := c.Param("address")

	var req struct {
		Blacklisted bool `json:"blacklisted"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse blacklist request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := h.svc.SetBlacklist(caller, address, req.Blacklisted); err != nil {
		log.Warn("Blacklist change rejected",
			zap.String("caller", caller),
			zap.String("merchant", address),
			zap.Error(err))
		prometheus.RecordProtocolError("set_blacklist", errorKind(err))
		return c.JSON(statusForError(err), echo.Map{"error": clientMessage(err)})
	}

	prometheus.RecordAdminOperation("blacklist")
	log.Info("Merchant blacklist updated",
		zap.String("merchant", address),
		zap.Bool("blacklisted", req.Blacklisted))

	return c.JSON(http.StatusOK, echo.Map{"message": "Blacklist updated"})
}

// SetShutdown toggles the emergency shutdown flag
func (h *Handler) SetShutdown(c echo.Context) error {
	log := logger.FromEcho(c)

	caller, ok := callerAddress(c)
	if !ok {
		log.Error("Failed to get wallet claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse shutdown request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := h.svc.SetEmergencyShutdown(caller, req.Enabled); err != nil {
		log.Warn("Shutdown change rejected", zap.String("caller", caller), zap.Error(err))
		prometheus.RecordProtocolError("set_shutdown", errorKind(err))
		return c.JSON(statusForError(err), echo.Map{"error": clientMessage(err)})
	}

	prometheus.RecordAdminOperation("shutdown")
	log.Warn("Emergency shutdown flag changed", zap.Bool("enabled", req.Enabled))

	return c.JSON(http.StatusOK, echo.Map{"message": "Shutdown flag updated"})
}

// SetFeeRate changes the platform fee rate
func (h *Handler) SetFeeRate(c echo.Context) error {
	log := logger.FromEcho(c)

	caller, ok := callerAddress(c)
	if !ok {
		log.Error("Failed to get wallet claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		Rate uint64 `json:"rate"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse fee rate request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := h.svc.SetPlatformFeeRate(caller, req.Rate); err != nil {
		log.Warn("Fee rate change rejected", zap.String("caller", caller), zap.Error(err))
		prometheus.RecordProtocolError("set_fee_rate", errorKind(err))
		return c.JSON(statusForError(err), echo.Map{"error": clientMessage(err)})
	}

	prometheus.RecordAdminOperation("fee_rate")
	log.Info("Platform fee rate updated", zap.Uint64("rate", req.Rate))

	return c.JSON(http.StatusOK, echo.Map{"message": "Fee rate updated"})
}

// ContractStatus returns the contract-wide control state
func (h *Handler) ContractStatus(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	state, err := h.svc.ContractStatus()
	if err != nil {
		log.Error("Failed to load contract state", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": state})
}
