package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values form a strict hierarchy used by "at least this level" checks.
const (
	RoleCashier    = "cashier"
	RoleManager    = "manager"
	RoleOwner      = "owner"
	RoleSuperAdmin = "super_admin"
)

var roleLevels = map[string]int{
	RoleCashier:    1,
	RoleManager:    2,
	RoleOwner:      3,
	RoleSuperAdmin: 4,
}

// RoleLevel returns the hierarchy level of a role, 0 for unknown roles so
// that an unrecognized role never passes any threshold check.
func RoleLevel(role string) int { return roleLevels[role] }

// User stores platform and tenant users with role-based access.
// BusinessID is nil only for platform-level super_admin accounts; email is
// unique across the whole system regardless of tenant.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BusinessID   *uuid.UUID `gorm:"type:uuid;index"`
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null"`
	Role         string     `gorm:"type:varchar(20);not null"`
	FirstName    string
	LastName     string
	Active       bool `gorm:"not null;default:true"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
