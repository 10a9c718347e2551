package model

import (
	"time"
)

// ContractStateID is the fixed primary key of the singleton state row.
const ContractStateID = 1

// MaxPlatformFeeRate bounds the owner-settable platform fee percentage.
const MaxPlatformFeeRate = 10

// ContractState is the single contract-wide control record: owner identity,
// emergency shutdown flag, platform fee rate and the next session id
// counter. Session id allocation reads and advances NextSessionID inside the
// creating transaction, so committed ids are strictly increasing and never
// reused.
type ContractState struct {
	ID                uint      `json:"-" gorm:"primaryKey"`
	OwnerAddress      string    `json:"owner" gorm:"type:varchar(128);not null"`
	EmergencyShutdown bool      `json:"is_emergency_shutdown" gorm:"not null;default:false"`
	PlatformFeeRate   uint64    `json:"platform_fee_rate" gorm:"not null;default:1"`
	NextSessionID     uint64    `json:"next_session_id" gorm:"not null;default:1"`
	UpdatedAt         time.Time `json:"-"`
}
