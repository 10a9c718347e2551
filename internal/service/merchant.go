package service

import (
	"errors"

	"billsplit-service/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterMerchant creates the registry record for the caller. Registration
// is the verification step, so the record is created verified. A caller can
// register at most once, ever; later attempts fail regardless of arguments.
func (s *Service) RegisterMerchant(caller, name string) (*model.Merchant, error) {
	var merchant model.Merchant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := guardShutdown(tx); err != nil {
			return err
		}
		// Duplicate check precedes argument validation.
		var existing model.Merchant
		err := tx.First(&existing, "address = ?", caller).Error
		if err == nil {
			return ErrAlreadyRegistered
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if name == "" || len(name) > model.MaxMerchantNameLen {
			return ErrInvalidName
		}

		merchant = model.Merchant{
			Address:  caller,
			Name:     name,
			Verified: true,
		}
		return tx.Create(&merchant).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Merchant registered",
		zap.String("address", merchant.Address),
		zap.String("name", merchant.Name))

	return &merchant, nil
}

// SetBlacklist toggles a merchant's blacklist flag. Contract owner only.
func (s *Service) SetBlacklist(caller, address string, value bool) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		state, err := contractState(tx)
		if err != nil {
			return err
		}
		if caller != state.OwnerAddress {
			return ErrUnauthorized
		}

		var merchant model.Merchant
		if err := tx.First(&merchant, "address = ?", address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMerchantNotFound
			}
			return err
		}

		return tx.Model(&merchant).Update("blacklisted", value).Error
	})
	if err != nil {
		return err
	}

	s.log.Info("Merchant blacklist updated",
		zap.String("address", address),
		zap.Bool("blacklisted", value))

	return nil
}

// GetMerchant looks up a merchant record by address.
func (s *Service) GetMerchant(address string) (*model.Merchant, error) {
	var merchant model.Merchant
	if err := s.db.First(&merchant, "address = ?", address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}
	return &merchant, nil
}
