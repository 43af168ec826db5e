package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken persists one server-side session. Only a one-way hash of the
// raw token is stored; validation re-hashes the candidate and compares it
// against the owning user's live rows. Rotation deletes the consumed row, so
// a second presentation of the same token finds nothing.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	TokenHash string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}
