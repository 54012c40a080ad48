package models

import (
	"time"

	"gorm.io/gorm"
)

// Assessment statuses
const (
	AssessmentStatusOutstanding = "outstanding"
	AssessmentStatusPartPaid    = "part_paid"
	AssessmentStatusPaid        = "paid"
)

// Assessment is one billing-year demand notice for a property.
type Assessment struct {
	gorm.Model
	PropertyID uint      `gorm:"not null;index:idx_property_year,unique"`
	Property   *Property `gorm:"foreignKey:PropertyID"`
	Year       int       `gorm:"not null;index:idx_property_year,unique"`
	AmountDue  float64   `gorm:"not null"`
	AmountPaid float64   `gorm:"default:0"`
	Arrears    float64   `gorm:"default:0"` // unpaid balance carried from prior years
	Status     string    `gorm:"not null;default:'outstanding'"`
	DueDate    time.Time
	IssuedBy   uint // revenue officer user id
}

// Balance returns the amount still owed on this assessment.
func (a *Assessment) Balance() float64 {
	return a.AmountDue + a.Arrears - a.AmountPaid
}
