package repository

import (
	"context"
	"time"

	"posadmin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenRepository persists hashed refresh-token rows. Raw token values
// never reach this layer.
type RefreshTokenRepository interface {
	Store(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	// FindValidByUser returns the user's rows with expires_at still in the
	// future. Validation hashes the candidate token and compares against each.
	FindValidByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]model.RefreshToken, error)
	// DeleteByID reports how many rows were removed. Zero rows means a
	// concurrent refresh already consumed the token — the caller must treat
	// that as an invalid token, not an error.
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type refreshTokenRepo struct{ db *gorm.DB }

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepo{db: db}
}

func (r *refreshTokenRepo) Store(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	row := &model.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *refreshTokenRepo) FindValidByUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]model.RefreshToken, error) {
	var rows []model.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Find(&rows).Error
	return rows, err
}

func (r *refreshTokenRepo) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.RefreshToken{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *refreshTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.RefreshToken{}, "expires_at <= ?", now)
	return res.RowsAffected, res.Error
}
