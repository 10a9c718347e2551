package service

import (
	"errors"
	"time"

	"billsplit-service/internal/ledger"
	"billsplit-service/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateSession opens a new bill session for a verified, non-blacklisted
// merchant. The session id comes from the contract-state counter, advanced
// inside the same transaction after all validation has passed, so committed
// ids are strictly increasing and a rejected call never burns one.
func (s *Service) CreateSession(caller, merchant string, totalAmount, minContribution, tipRate uint64) (uint64, error) {
	var sessionID uint64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := guardShutdown(tx); err != nil {
			return err
		}
		if caller != merchant {
			return ErrUnauthorized
		}

		var m model.Merchant
		if err := tx.First(&m, "address = ?", merchant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMerchantNotVerified
			}
			return err
		}
		if !m.Verified || m.Blacklisted {
			return ErrMerchantNotVerified
		}

		if totalAmount == 0 || minContribution == 0 || minContribution > totalAmount || totalAmount > maxBillAmount {
			return ErrInvalidAmount
		}
		if tipRate > model.MaxTipRate {
			return ErrInvalidTipRate
		}

		state, err := contractState(tx)
		if err != nil {
			return err
		}
		sessionID = state.NextSessionID
		if err := tx.Model(&model.ContractState{}).
			Where("id = ?", model.ContractStateID).
			Update("next_session_id", sessionID+1).Error; err != nil {
			return err
		}

		session := model.BillSession{
			SessionID:       sessionID,
			MerchantAddress: merchant,
			TotalBillAmount: totalAmount,
			MinContribution: minContribution,
			TipRate:         tipRate,
			Status:          model.SessionStatusOpen,
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		return tx.Model(&model.Merchant{}).
			Where("address = ?", merchant).
			Update("total_sessions", gorm.Expr("total_sessions + 1")).Error
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("Session created",
		zap.Uint64("session_id", sessionID),
		zap.String("merchant", merchant),
		zap.Uint64("total_bill_amount", totalAmount),
		zap.Uint64("tip_rate", tipRate))

	return sessionID, nil
}

// JoinSession contributes funds to an open session. The transfer into escrow
// happens in the same transaction as the ledger mutation; if the caller
// cannot cover the amount nothing is recorded. A repeat join by the same
// address accumulates into the existing record without recounting the
// participant.
func (s *Service) JoinSession(caller string, sessionID, amount uint64) error {
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
		if amount < session.MinContribution {
			return ErrBelowMinimum
		}
		// Collected never exceeds maxBillAmount, so the settlement split
		// stays inside uint64.
		if amount > maxBillAmount-session.AmountCollected {
			return ErrInvalidAmount
		}

		if err := ledger.Transfer(tx, caller, s.cfg.EscrowAddress, amount); err != nil {
			return err
		}

		newParticipant := false
		var participant model.Participant
		err := tx.First(&participant, "session_id = ? AND address = ?", sessionID, caller).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			newParticipant = true
			participant = model.Participant{
				SessionID:          sessionID,
				Address:            caller,
				ContributionAmount: amount,
			}
			if err := tx.Create(&participant).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			if err := tx.Model(&participant).
				Update("contribution_amount", gorm.Expr("contribution_amount + ?", amount)).Error; err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"amount_collected": gorm.Expr("amount_collected + ?", amount),
		}
		if newParticipant {
			updates["participant_count"] = gorm.Expr("participant_count + 1")
		}
		return tx.Model(&model.BillSession{}).
			Where("session_id = ?", sessionID).
			Updates(updates).Error
	})
	if err != nil {
		return err
	}

	s.log.Info("Participant joined",
		zap.Uint64("session_id", sessionID),
		zap.String("participant", caller),
		zap.Uint64("amount", amount))

	return nil
}

// RaiseDispute flags the caller's participation and freezes the session.
// Only an existing participant of an open session can dispute it; a
// disputed session rejects further joins and is excluded from completion.
func (s *Service) RaiseDispute(caller string, sessionID uint64) error {
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

		var participant model.Participant
		if err := tx.First(&participant, "session_id = ? AND address = ?", sessionID, caller).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParticipantNotFound
			}
			return err
		}

		if session.Status != model.SessionStatusOpen {
			return ErrSessionNotOpen
		}

		if err := tx.Model(&participant).Update("has_raised_dispute", true).Error; err != nil {
			return err
		}
		return tx.Model(&session).Update("status", model.SessionStatusDisputed).Error
	})
	if err != nil {
		return err
	}

	s.log.Warn("Session disputed",
		zap.Uint64("session_id", sessionID),
		zap.String("participant", caller))

	return nil
}

// ExpireSession closes an under-collected session once the expiry window has
// elapsed and refunds every unreturned contribution from escrow. Anyone may
// trigger it; expiring an already-expired session is a no-op success so
// competing triggers cannot fail each other.
func (s *Service) ExpireSession(caller string, sessionID uint64) error {
	refunded := false
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
		if session.Status == model.SessionStatusExpired {
			return nil
		}
		if session.Status != model.SessionStatusOpen {
			return ErrSessionNotOpen
		}
		if time.Since(session.CreatedAt) < s.cfg.SessionExpiry {
			return ErrExpiryNotDue
		}
		if session.AmountCollected >= session.RequiredTotal() {
			return ErrExpiryNotDue
		}

		var participants []model.Participant
		if err := tx.Where("session_id = ? AND refunded = ?", sessionID, false).
			Find(&participants).Error; err != nil {
			return err
		}
		for _, p := range participants {
			if err := ledger.Transfer(tx, s.cfg.EscrowAddress, p.Address, p.ContributionAmount); err != nil {
				return err
			}
			if err := tx.Model(&model.Participant{}).
				Where("session_id = ? AND address = ?", p.SessionID, p.Address).
				Update("refunded", true).Error; err != nil {
				return err
			}
		}

		refunded = true
		return tx.Model(&session).Updates(map[string]interface{}{
			"status":           model.SessionStatusExpired,
			"amount_collected": 0,
		}).Error
	})
	if err != nil {
		return err
	}

	if refunded {
		s.log.Info("Session expired",
			zap.Uint64("session_id", sessionID),
			zap.String("triggered_by", caller))
	}

	return nil
}

// GetSession looks up a session record by id.
func (s *Service) GetSession(sessionID uint64) (*model.BillSession, error) {
	var session model.BillSession
	if err := s.db.First(&session, "session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetParticipant looks up a participant record by (session, address).
func (s *Service) GetParticipant(sessionID uint64, address string) (*model.Participant, error) {
	var participant model.Participant
	if err := s.db.First(&participant, "session_id = ? AND address = ?", sessionID, address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return &participant, nil
}
