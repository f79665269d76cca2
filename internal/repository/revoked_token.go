package repository

import (
	"comply/media-api/internal/model"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RevocationRepository struct {
	db *gorm.DB
}

func NewRevocationRepository(db *gorm.DB) *RevocationRepository {
	return &RevocationRepository{db: db}
}

// Revoke is idempotent, revoking the same token twice is not an error
func (r *RevocationRepository) Revoke(ctx context.Context, t *model.RevokedToken) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(t).
		Error
	if err != nil {
		return fmt.Errorf("failed to revoke token, %w", err)
	}

	return nil
}

func (r *RevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var n int64

	err := r.db.WithContext(ctx).
		Model(model.RevokedToken{}).
		Where("token_id = ?", tokenID).
		Count(&n).
		Error
	if err != nil {
		return false, fmt.Errorf("failed to check revocation list, %w", err)
	}

	return n > 0, nil
}

// PurgeExpired drops entries for tokens that expired before now and returns how many went
func (r *RevocationRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(model.RevokedToken{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge revocation list, %w", res.Error)
	}

	return res.RowsAffected, nil
}
