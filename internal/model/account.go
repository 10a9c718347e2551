package model

import (
	"time"
)

// Account is a ledger balance row, keyed by wallet address. Balances are
// non-negative integers in the smallest currency unit. The configured escrow
// address holds the funds of every open session.
type Account struct {
	Address   string    `json:"address" gorm:"primaryKey;type:varchar(128)"`
	Balance   uint64    `json:"balance" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
