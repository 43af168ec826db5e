package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditEvent is an append-only record of a security-relevant action.
// Writes are best-effort: a failure to record never aborts the operation
// that triggered it.
type AuditEvent struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BusinessID *uuid.UUID `gorm:"type:uuid;index" json:"business_id,omitempty"`
	UserID     uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	Action     string     `gorm:"type:varchar(40);not null" json:"action"`
	Entity     string     `gorm:"type:varchar(40);not null" json:"entity"`
	EntityID   string     `json:"entity_id"`
	Payload    datatypes.JSON `json:"payload,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
