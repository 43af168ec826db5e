package repository

import (
	"context"

	"posadmin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRepository appends audit events. The table is append-only; there is
// deliberately no update or delete surface.
type AuditRepository interface {
	Insert(ctx context.Context, e *model.AuditEvent) error
	ListByBusiness(ctx context.Context, businessID uuid.UUID, limit int) ([]model.AuditEvent, error)
}

type auditRepo struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepo{db: db} }

func (r *auditRepo) Insert(ctx context.Context, e *model.AuditEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *auditRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID, limit int) ([]model.AuditEvent, error) {
	var events []model.AuditEvent
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at desc").
		Limit(limit).
		Find(&events).Error
	return events, err
}
