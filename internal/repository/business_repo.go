package repository

import (
	"context"

	"posadmin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusinessRepository interface {
	Create(ctx context.Context, b *model.Business) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Business, error)
	List(ctx context.Context) ([]model.Business, error)
	Update(ctx context.Context, b *model.Business) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type businessRepo struct{ db *gorm.DB }

func NewBusinessRepository(db *gorm.DB) BusinessRepository { return &businessRepo{db: db} }

func (r *businessRepo) Create(ctx context.Context, b *model.Business) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *businessRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	var b model.Business
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	return &b, err
}

func (r *businessRepo) List(ctx context.Context) ([]model.Business, error) {
	var businesses []model.Business
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&businesses).Error
	return businesses, err
}

func (r *businessRepo) Update(ctx context.Context, b *model.Business) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *businessRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Business{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *businessRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Business{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
