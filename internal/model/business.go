package model

import (
	"time"

	"github.com/google/uuid"
)

// Business status values. A non-active business keeps its rows; only the
// status field changes.
const (
	BusinessActive   = "active"
	BusinessInactive = "inactive"
	BusinessPending  = "pending"
)

// Business is a tenant: every non-super_admin user and most resources belong
// to exactly one.
type Business struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Currency  string    `gorm:"type:char(3);not null"`
	Timezone  string    `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
