package service

import (
	"errors"

	"billsplit-service/internal/ledger"
	"billsplit-service/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Settlement is the result of a completed session payment. All figures are
// exact integers; the fee computation floors, so residual dust stays with
// the merchant payout side of the split rather than being allocated.
type Settlement struct {
	SessionID       uint64 `json:"session_id"`
	AmountCollected uint64 `json:"amount_collected"`
	PlatformFee     uint64 `json:"platform_fee"`
	MerchantPayout  uint64 `json:"merchant_payout"`
}

// CompleteSessionPayment settles an open session once the collected amount
// covers base plus tip in full. Caller must be the owning merchant or the
// contract owner. The payout and fee transfers, the participant flag sweep
// and the status transition commit together or not at all; on any failure
// the session stays OPEN for retry.
func (s *Service) CompleteSessionPayment(caller string, sessionID uint64) (*Settlement, error) {
	var settlement Settlement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := guardShutdown(tx); err != nil {
			return err
		}

		var session model.BillSession
		if err := forUpdate(tx).First(&session, "session_id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if session.Status != model.SessionStatusOpen {
			return ErrSessionNotOpen
		}

		state, err := contractState(tx)
		if err != nil {
			return err
		}
		if caller != session.MerchantAddress && caller != state.OwnerAddress {
			return ErrUnauthorized
		}

		if session.AmountCollected < session.RequiredTotal() {
			return ErrInsufficientCollection
		}

		fee := session.AmountCollected * state.PlatformFeeRate / 100
		payout := session.AmountCollected - fee

		if err := ledger.Transfer(tx, s.cfg.EscrowAddress, session.MerchantAddress, payout); err != nil {
			return err
		}
		if err := ledger.Transfer(tx, s.cfg.EscrowAddress, state.OwnerAddress, fee); err != nil {
			return err
		}

		if err := tx.Model(&model.Participant{}).
			Where("session_id = ? AND refunded = ?", sessionID, false).
			Update("payment_completed", true).Error; err != nil {
			return err
		}

		if err := tx.Model(&session).Update("status", model.SessionStatusCompleted).Error; err != nil {
			return err
		}

		settlement = Settlement{
			SessionID:       sessionID,
			AmountCollected: session.AmountCollected,
			PlatformFee:     fee,
			MerchantPayout:  payout,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Session settled",
		zap.Uint64("session_id", settlement.SessionID),
		zap.Uint64("amount_collected", settlement.AmountCollected),
		zap.Uint64("platform_fee", settlement.PlatformFee),
		zap.Uint64("merchant_payout", settlement.MerchantPayout))

	return &settlement, nil
}
