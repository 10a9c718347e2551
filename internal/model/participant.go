package model

import (
	"time"
)

// Participant represents one wallet's contribution ledger entry for a
// session. The composite key guarantees at most one row per (session,
// address); re-joining accumulates into the existing row. Rows are kept
// after settlement or refund for audit.
type Participant struct {
	SessionID          uint64    `json:"session_id" gorm:"primaryKey;autoIncrement:false"`
	Address            string    `json:"address" gorm:"primaryKey;type:varchar(128)"`
	ContributionAmount uint64    `json:"contribution_amount" gorm:"not null"`
	PaymentCompleted   bool      `json:"payment_completed" gorm:"not null;default:false"`
	HasRaisedDispute   bool      `json:"has_raised_dispute" gorm:"not null;default:false"`
	Refunded           bool      `json:"refunded" gorm:"not null;default:false"`
	JoinedAt           time.Time `json:"joined_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at"`
}
