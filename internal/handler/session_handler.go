package handler

import (
	"net/http"
	"strconv"
	"time"

	"billsplit-service/pkg/logger"
	"billsplit-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// sessionIDParam parses the :id path parameter
func sessionIDParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// CreateSession handles bill session creation
func (h *Handler) CreateSession(c echo.Context) error {
	log := logger.FromEcho(c)

	caller, ok := callerAddress(c)
	if !ok {
		log.Error("Failed to get wallet claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		MerchantAddress string `json:"merchant_address"`
		TotalBillAmount uint64 `json:"total_bill_amount"`
		MinContribution uint64 `json:"min_contribution"`
		TipRate         uint64 `json:"tip_rate"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse session creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	sessionID, err := h.svc.CreateSession(caller, req.MerchantAddress,
		req.TotalBillAmount, req.MinContribution, req.TipRate)
	if err != nil {
		log.Warn("Session creation rejected",
			zap.String("caller", caller),
			zap.String("merchant", req.MerchantAddress),
			zap.Error(err))
		prometheus.RecordProtocolError("create_session", errorKind(err))
		return c.JSON(statusForError(err), echo.Map{"error": clientMessage(err)})
	}

	prometheus.SessionCreatedCounter.Inc()
	log.Info("Session created",
		zap.Uint64("session_id", sessionID),
		zap.String("merchant", req.MerchantAddress))

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Session created successfully",
		"session_id": sessionID,
	})
}

// JoinSession handles a participant contribution
func (h *Handler) JoinSession(c echo.Context) error {
	log := logger.FromEcho(c)

	caller, ok := callerAddress(c)
	if !ok {
		log.Error("Failed to get wallet claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	sessionID, err := sessionIDParam(c)
	if err != nil {
		log.Error("Invalid session ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session ID"})
	}

	var req struct {
		Amount uint64 `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse join request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := h.svc.JoinSession(caller, sessionID, req.Amount); err != nil {
		log.Warn("Join rejected",
			zap.Uint64("session_id", sessionID),
			zap.String("participant", caller),
			zap.Error(err))
		prometheus.RecordProtocolError("join_session", errorKind(err))
		return c.JSON(statusForError(err), echo.Map{"error": clientMessage(err)})
	}

	prometheus.RecordJoin(req.Amount)
	log.Info("Participant joined",
		zap.Uint64("session_id", sessionID),
		zap.String("participant", caller),
		zap.Uint64("amount", req.Amount))

	return c.JSON(http.StatusOK, echo.Map{"message": "Joined session successfully"})
}

// RaiseDispute handles a participant dispute
func (h *Handler) RaiseDispute(c echo.Context) error {
	log := logger.FromEcho(c)

	caller, ok := callerAddress(c)
	if !ok {
		log.Error("Failed to get wallet claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	sessionID, err := sessionIDParam(c)
	if err != nil {
		log.Error("Invalid session ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session ID"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := h.svc.RaiseDispute(caller, sessionID); err != nil {
		log.Warn("Dispute rejected",
			zap.Uint64("session_id", sessionID),
			zap.String("participant", caller),
			zap.Error(err))
		prometheus.RecordProtocolError("raise_dispute", errorKind(err))
		return c.JSON(statusForError(err), echo.Map{"error": clientMessage(err)})
	}

	prometheus.SessionDisputeCounter.Inc()
	log.Warn("Session disputed",
		zap.Uint64("session_id", sessionID),
		zap.String("participant", caller))

	return c.JSON(http.StatusOK, echo.Map{"message": "Dispute raised"})
}

// ExpireSession handles caller-triggered expiry
func (h *Handler) ExpireSession(c echo.Context) error {
	log := logger.FromEcho(c)

	caller, ok := callerAddress(c)
	if !ok {
		log.Error("Failed to get wallet claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	sessionID, err := sessionIDParam(c)
	if err != nil {
		log.Error("Invalid session ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session ID"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := h.svc.ExpireSession(caller, sessionID); err != nil {
		log.Warn("Expire rejected",
			zap.Uint64("session_id", sessionID),
			zap.Error(err))
		prometheus.RecordProtocolError("expire_session", errorKind(err))
		return c.JSON(statusForError(err), echo.Map{"error": clientMessage(err)})
	}

	prometheus.SessionExpiredCounter.Inc()
	log.Info("Session expire processed", zap.Uint64("session_id", sessionID))

	return c.JSON(http.StatusOK, echo.Map{"message": "Session expired"})
}

// CompleteSession handles settlement of a fully collected session
func (h *Handler) CompleteSession(c echo.Context) error {
	log := logger.FromEcho(c)

	caller, ok := callerAddress(c)
	if !ok {
		log.Error("Failed to get wallet claims from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	sessionID, err := sessionIDParam(c)
	if err != nil {
		log.Error("Invalid session ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session ID"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	settlement, err := h.svc.CompleteSessionPayment(caller, sessionID)
	if err != nil {
		log.Warn("Settlement rejected",
			zap.Uint64("session_id", sessionID),
			zap.String("caller", caller),
			zap.Error(err))
		prometheus.RecordProtocolError("complete_session", errorKind(err))
		return c.JSON(statusForError(err), echo.Map{"error": clientMessage(err)})
	}

	prometheus.RecordSettlement(settlement.MerchantPayout, settlement.PlatformFee)
	log.Info("Session settled",
		zap.Uint64("session_id", sessionID),
		zap.Uint64("merchant_payout", settlement.MerchantPayout),
		zap.Uint64("platform_fee", settlement.PlatformFee))

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Session completed successfully",
		"settlement": settlement,
	})
}

// GetSession retrieves session details by id
func (h *Handler) GetSession(c echo.Context) error {
	log := logger.FromEcho(c)

	sessionID, err := sessionIDParam(c)
	if err != nil {
		log.Error("Invalid session ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	session, err := h.svc.GetSession(sessionID)
	if err != nil {
		log.Debug("Session lookup failed", zap.Uint64("session_id", sessionID), zap.Error(err))
		return c.JSON(statusForError(err), echo.Map{"error": clientMessage(err)})
	}

	return c.JSON(http.StatusOK, echo.Map{"session": session})
}

// GetParticipant retrieves a participant record by (session, address)
func (h *Handler) GetParticipant(c echo.Context) error {
	log := logger.FromEcho(c)

	sessionID, err := sessionIDParam(c)
	if err != nil {
		log.Error("Invalid session ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session ID"})
	}
	address := c.Param("address")

	defer prometheus.TrackDBOperation("query")(time.Now())

	participant, err := h.svc.GetParticipant(sessionID, address)
	if err != nil {
		log.Debug("Participant lookup failed",
			zap.Uint64("session_id", sessionID),
			zap.String("address", address),
			zap.Error(err))
		return c.JSON(statusForError(err), echo.Map{"error": clientMessage(err)})
	}

	return c.JSON(http.StatusOK, echo.Map{"participant": participant})
}
