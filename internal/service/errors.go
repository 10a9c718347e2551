package service

import "errors"

// Every rejected operation returns one of these sentinel values (or
// ledger.ErrInsufficientFunds), compared with errors.Is. A rejection never
// leaves partial state behind: each operation runs in a single transaction.
var (
	ErrUnauthorized           = errors.New("caller not authorized")
	ErrAlreadyRegistered      = errors.New("merchant already registered")
	ErrMerchantNotFound       = errors.New("merchant not found")
	ErrSessionNotFound        = errors.New("session not found")
	ErrParticipantNotFound    = errors.New("participant not found")
	ErrInvalidName            = errors.New("invalid merchant name")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidTipRate         = errors.New("invalid tip rate")
	ErrInvalidFeeRate         = errors.New("invalid platform fee rate")
	ErrBelowMinimum           = errors.New("contribution below session minimum")
	ErrSessionNotOpen         = errors.New("session not open")
	ErrExpiryNotDue           = errors.New("session not eligible for expiry")
	ErrInsufficientCollection = errors.New("collected amount does not cover bill and tip")
	ErrShutdownActive         = errors.New("emergency shutdown active")
	ErrMerchantNotVerified    = errors.New("merchant not verified")
)
