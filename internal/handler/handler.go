package handler

import (
	"errors"
	"net/http"

	"billsplit-service/internal/ledger"
	"billsplit-service/internal/service"
	"billsplit-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
)

// Handler holds the protocol service the HTTP surface is built on
type Handler struct {
	svc *service.Service
}

// New creates a handler for the given service
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// callerAddress extracts the authenticated wallet address set by the auth
// middleware. The address never comes from the request body.
func callerAddress(c echo.Context) (string, bool) {
	claims, ok := c.Get("user").(*jwtutil.WalletClaims)
	if !ok {
		return "", false
	}
	return claims.Address, true
}

// statusForError maps a protocol error to an HTTP status code
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, service.ErrMerchantNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrParticipantNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrSessionNotOpen):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidTipRate),
		errors.Is(err, service.ErrInvalidFeeRate),
		errors.Is(err, service.ErrBelowMinimum),
		errors.Is(err, service.ErrExpiryNotDue),
		errors.Is(err, service.ErrInsufficientCollection),
		errors.Is(err, service.ErrMerchantNotVerified):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, service.ErrShutdownActive):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorKind names an error for the metrics label
func errorKind(err error) string {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, service.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, service.ErrMerchantNotFound):
		return "merchant_not_found"
	case errors.Is(err, service.ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, service.ErrParticipantNotFound):
		return "participant_not_found"
	case errors.Is(err, service.ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, service.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, service.ErrInvalidTipRate):
		return "invalid_tip_rate"
	case errors.Is(err, service.ErrInvalidFeeRate):
		return "invalid_fee_rate"
	case errors.Is(err, service.ErrBelowMinimum):
		return "below_minimum"
	case errors.Is(err, service.ErrSessionNotOpen):
		return "session_not_open"
	case errors.Is(err, service.ErrExpiryNotDue):
		return "expiry_not_due"
	case errors.Is(err, service.ErrInsufficientCollection):
		return "insufficient_collection"
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, service.ErrShutdownActive):
		return "shutdown_active"
	case errors.Is(err, service.ErrMerchantNotVerified):
		return "merchant_not_verified"
	default:
		return "internal"
	}
}

// clientMessage hides internal errors behind a generic message
func clientMessage(err error) string {
	if statusForError(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}
