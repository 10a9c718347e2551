package model

import (
	"time"
)

// MaxMerchantNameLen bounds the merchant display name.
const MaxMerchantNameLen = 50

// Merchant represents a registered merchant, keyed by wallet address.
// Registration is the verification step, so Verified is true from creation.
// Rows are never deleted; Blacklisted is the owner's kill switch for new
// sessions.
type Merchant struct {
	Address       string    `json:"address" gorm:"primaryKey;type:varchar(128)"`
	Name          string    `json:"name" gorm:"type:varchar(50);not null"`
	Verified      bool      `json:"is_verified" gorm:"not null;default:false"`
	Blacklisted   bool      `json:"is_blacklisted" gorm:"not null;default:false"`
	TotalSessions uint64    `json:"total_sessions_created" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
