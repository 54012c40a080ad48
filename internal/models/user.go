package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleTaxpayer = "taxpayer"
	RoleOfficer  = "revenue_officer"
	RoleAdmin    = "admin"
)

// User is a registered taxpayer or an assembly staff account.
type User struct {
	gorm.Model
	Email               string `gorm:"uniqueIndex;not null"`
	Password            string `gorm:"not null"`
	Name                string `gorm:"not null"`
	Phone               string `gorm:"uniqueIndex;not null"`
	TIN                 string `gorm:"uniqueIndex;default:null"` // Ghana Revenue Authority taxpayer number
	GhanaCardNumber     string `gorm:"default:null"`
	Role                string `gorm:"default:'taxpayer'"`
	Status              string `gorm:"default:'active'"`
	DistrictCode        string `gorm:"default:null"` // MMDA the account belongs to
	LastLoginAt         time.Time
	LastLoginIP         string
	FailedLoginAttempts int `gorm:"default:0"`
	AccountLockoutUntil *time.Time
	TokenVersion        int `gorm:"default:1"`
}
