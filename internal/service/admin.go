package service

import (
	"billsplit-service/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetEmergencyShutdown toggles the contract-wide shutdown flag. While set,
// every mutating call except the owner administrative ones is rejected.
func (s *Service) SetEmergencyShutdown(caller string, value bool) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		state, err := contractState(tx)
		if err != nil {
			return err
		}
		if caller != state.OwnerAddress {
			return ErrUnauthorized
		}
		return tx.Model(&model.ContractState{}).
			Where("id = ?", model.ContractStateID).
			Update("emergency_shutdown", value).Error
	})
	if err != nil {
		return err
	}

	s.log.Warn("Emergency shutdown flag changed", zap.Bool("enabled", value))
	return nil
}

// SetPlatformFeeRate changes the platform fee percentage. Owner only, capped
// at MaxPlatformFeeRate.
func (s *Service) SetPlatformFeeRate(caller string, rate uint64) error {
	if rate > model.MaxPlatformFeeRate {
		return ErrInvalidFeeRate
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		state, err := contractState(tx)
		if err != nil {
			return err
		}
		if caller != state.OwnerAddress {
			return ErrUnauthorized
		}
		return tx.Model(&model.ContractState{}).
			Where("id = ?", model.ContractStateID).
			Update("platform_fee_rate", rate).Error
	})
	if err != nil {
		return err
	}

	s.log.Info("Platform fee rate changed", zap.Uint64("rate", rate))
	return nil
}
