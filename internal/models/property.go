package models

import "gorm.io/gorm"

// Property categories used for rate impost lookup
const (
	PropertyCategoryResidential = "residential"
	PropertyCategoryCommercial  = "commercial"
	PropertyCategoryIndustrial  = "industrial"
	PropertyCategoryMixedUse    = "mixed_use"
)

// Property is a rateable property registered with the assembly.
type Property struct {
	gorm.Model
	OwnerID       uint    `gorm:"not null;index"`
	Owner         *User   `gorm:"foreignKey:OwnerID"`
	ParcelNumber  string  `gorm:"uniqueIndex;not null"` // assembly valuation roll number
	Address       string  `gorm:"not null"`
	Zone          string  // electoral area / zonal council
	Category      string  `gorm:"default:'residential'"`
	RateableValue float64 `gorm:"not null"`
	RateImpost    float64 `gorm:"not null"` // per-cedi rate set by the assembly for the category
	Status        string  `gorm:"default:'active'"`
}

// AnnualRate returns the property rate due for one year.
func (p *Property) AnnualRate() float64 {
	return p.RateableValue * p.RateImpost
}
