package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment is the persisted record of one payment attempt. The unique
// index on Reference is what enforces at-most-once per reference; the
// payment service itself does not deduplicate concurrent requests.
//
// Provider stores the adapter key that issued the transaction so status
// checks can be routed back to the same backend instead of relying on
// transaction-id prefix inference.
type Payment struct {
	gorm.Model
	UserID               uint        `gorm:"not null;index"`
	AssessmentID         *uint       `gorm:"index"`
	Assessment           *Assessment `gorm:"foreignKey:AssessmentID"`
	Reference            string      `gorm:"uniqueIndex;not null"`
	TransactionID        string      `gorm:"index"`
	Method               string      `gorm:"not null"`
	Provider             string      // adapter key, e.g. "mtn", "ghipss"
	ProviderName         string      // human-readable, e.g. "MTN Mobile Money"
	Status               string      `gorm:"not null;default:'pending'"`
	Amount               float64     `gorm:"not null"`
	Fee                  float64     `gorm:"default:0"`
	TotalAmount          float64     `gorm:"not null"`
	Currency             string      `gorm:"default:'GHS'"`
	Description          string
	ReceiptNumber        string `gorm:"uniqueIndex;default:null"`
	RequiresVerification bool   `gorm:"default:false"` // cash awaiting officer confirmation
	VerifiedBy           *uint
	VerifiedAt           *time.Time
	Metadata             JSON `gorm:"type:jsonb"`
}
