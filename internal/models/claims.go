package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Taxpayer permissions
	PermissionPropertyRead   = "property:read"
	PermissionPaymentWrite   = "payment:write"
	PermissionPaymentRead    = "payment:read"
	PermissionAssessmentRead = "assessment:read"
	PermissionChangePassword = "user:change-password"

	// Revenue officer permissions
	PermissionPropertyWrite   = "property:write"
	PermissionAssessmentWrite = "assessment:write"
	PermissionCashVerify      = "payment:cash-verify"
	PermissionUserRead        = "user:read"
	PermissionUserWrite       = "user:write"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionPropertyRead,
			PermissionPropertyWrite,
			PermissionAssessmentRead,
			PermissionAssessmentWrite,
			PermissionPaymentRead,
			PermissionPaymentWrite,
			PermissionCashVerify,
			PermissionUserRead,
			PermissionUserWrite,
			PermissionChangePassword,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleOfficer:
		return []string{
			PermissionPropertyRead,
			PermissionPropertyWrite,
			PermissionAssessmentRead,
			PermissionAssessmentWrite,
			PermissionPaymentRead,
			PermissionCashVerify,
			PermissionUserRead,
			PermissionChangePassword,
		}
	case RoleTaxpayer:
		return []string{
			PermissionPropertyRead,
			PermissionAssessmentRead,
			PermissionPaymentRead,
			PermissionPaymentWrite,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
