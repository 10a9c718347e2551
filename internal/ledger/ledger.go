// Package ledger is the value-transfer collaborator of the protocol core. It
// moves balances between accounts inside the caller's transaction, so a
// transfer commits only if the whole containing operation commits.
package ledger

import (
	"errors"

	"billsplit-service/internal/model"

	"gorm.io/gorm"
)

// ErrInsufficientFunds is returned when the source account cannot cover the
// transfer amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Transfer moves amount from one account to another within tx. A missing
// source account is treated as a zero balance.
func Transfer(tx *gorm.DB, from, to string, amount uint64) error {
	if amount == 0 {
		return nil
	}

	var src model.Account
	if err := tx.First(&src, "address = ?", from).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInsufficientFunds
		}
		return err
	}
	if src.Balance < amount {
		return ErrInsufficientFunds
	}

	result := tx.Model(&model.Account{}).
		Where("address = ?", from).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}

	return Credit(tx, to, amount)
}

// Credit adds amount to an account, creating the row on first use.
func Credit(tx *gorm.DB, address string, amount uint64) error {
	var acct model.Account
	err := tx.First(&acct, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&model.Account{Address: address, Balance: amount}).Error
	}
	if err != nil {
		return err
	}

	return tx.Model(&model.Account{}).
		Where("address = ?", address).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
}

// Balance returns the current balance of an account, zero when the account
// does not exist.
func Balance(db *gorm.DB, address string) (uint64, error) {
	var acct model.Account
	err := db.First(&acct, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}
