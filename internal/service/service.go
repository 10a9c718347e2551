// Package service implements the bill-split protocol core: merchant
// registry, session ledger, participant ledger, settlement engine and the
// contract-wide control state. Every mutating operation executes in exactly
// one database transaction; a failure rolls the whole call back, so callers
// observe each operation fully applied or not at all.
package service

import (
	"errors"
	"math"
	"time"

	"billsplit-service/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Config holds the protocol parameters the service is wired with. Owner and
// fee rate only seed the contract-state row on first boot; afterwards the
// row is authoritative and owner operations mutate it in place.
type Config struct {
	OwnerAddress    string
	EscrowAddress   string
	PlatformFeeRate uint64
	SessionExpiry   time.Duration
}

// Service is the protocol core.
type Service struct {
	db  *gorm.DB
	cfg Config
	log *zap.Logger
}

// New creates a protocol service on top of the given database.
func New(db *gorm.DB, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, cfg: cfg, log: log}
}

// EnsureContractState bootstraps the singleton control-state row on first
// run. Subsequent runs leave the persisted row untouched.
func (s *Service) EnsureContractState() error {
	var existing model.ContractState
	err := s.db.First(&existing, "id = ?", model.ContractStateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		state := model.ContractState{
			ID:              model.ContractStateID,
			OwnerAddress:    s.cfg.OwnerAddress,
			PlatformFeeRate: s.cfg.PlatformFeeRate,
			NextSessionID:   1,
		}
		return s.db.Create(&state).Error
	}
	return err
}

// ContractStatus returns the contract-wide control state.
func (s *Service) ContractStatus() (*model.ContractState, error) {
	var state model.ContractState
	if err := s.db.First(&state, "id = ?", model.ContractStateID).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

// forUpdate adds a FOR UPDATE row lock to a read inside a mutating
// transaction. sqlite has no row locks; its single writer serializes
// transactions instead.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// contractState loads the control-state row, locked, inside a mutating
// transaction. Every mutating operation reads it first, so the row lock
// gives those transactions a single commit order.
func contractState(tx *gorm.DB) (*model.ContractState, error) {
	var state model.ContractState
	if err := forUpdate(tx).First(&state, "id = ?", model.ContractStateID).Error; err != nil {
		return nil, err
	}
	return &state, nil
}

// guardShutdown rejects non-administrative mutations while the emergency
// shutdown flag is set.
func guardShutdown(tx *gorm.DB) error {
	state, err := contractState(tx)
	if err != nil {
		return err
	}
	if state.EmergencyShutdown {
		return ErrShutdownActive
	}
	return nil
}

// maxBillAmount bounds both a session's bill and its collected amount, so
// the base*(100+tip) requirement and the fee computation stay inside
// uint64 for the largest allowed rates.
const maxBillAmount = math.MaxUint64 / (100 + model.MaxTipRate)
