package model

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleSales      UserRole = "SALES"
	UserRoleDispatcher UserRole = "DISPATCHER"
	UserRoleDriver     UserRole = "DRIVER"
)

// Principal is the authenticated caller. OrgID selects the tenant whose
// settings drive every pricing and compliance computation.
type Principal struct {
	UserID   uuid.UUID
	OrgID    uuid.UUID
	Role     UserRole
	DriverID *uuid.UUID
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

func (p Principal) IsDriver() bool {
	return p.Role == UserRoleDriver
}

// CanQuote reports whether the principal may request prices and staffing plans.
func (p Principal) CanQuote() bool {
	return p.Role == UserRoleAdmin || p.Role == UserRoleSales || p.Role == UserRoleDispatcher
}
