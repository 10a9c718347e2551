package model

import (
	"time"
)

// Session status values. Transitions are monotonic: a session leaves OPEN
// exactly once and never returns.
const (
	SessionStatusOpen      = "OPEN"
	SessionStatusCompleted = "COMPLETED"
	SessionStatusExpired   = "EXPIRED"
	SessionStatusDisputed  = "DISPUTED"
)

// MaxTipRate bounds the tip percentage a merchant can set.
const MaxTipRate = 30

// BillSession represents one bill-collection session. The ID is allocated
// sequentially from the contract state counter, never by the database.
// AmountCollected is always the sum of unreturned participant contributions.
type BillSession struct {
	SessionID        uint64    `json:"session_id" gorm:"primaryKey;autoIncrement:false"`
	MerchantAddress  string    `json:"merchant_address" gorm:"type:varchar(128);index;not null"`
	TotalBillAmount  uint64    `json:"total_bill_amount" gorm:"not null"`
	MinContribution  uint64    `json:"min_contribution" gorm:"not null"`
	TipRate          uint64    `json:"tip_rate" gorm:"not null"`
	AmountCollected  uint64    `json:"amount_collected" gorm:"not null;default:0"`
	ParticipantCount uint64    `json:"participant_count" gorm:"not null;default:0"`
	Status           string    `json:"session_status" gorm:"type:varchar(16);not null"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RequiredTotal returns the base bill plus tip, floored integer arithmetic.
func (s *BillSession) RequiredTotal() uint64 {
	return s.TotalBillAmount * (100 + s.TipRate) / 100
}
