// Package repository wraps every database access behind small typed stores
package repository

import (
	"comply/media-api/internal/errs"
	"comply/media-api/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// UserRepository is the credential store. Email uniqueness is enforced by the
// unique index on users.email, never by a lookup before the insert.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrDuplicateEmail
		}

		return fmt.Errorf("failed to create user, %w", err)
	}

	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(model.User{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return fmt.Errorf("failed to update user, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}

	return nil
}

// CountByEmail exists mostly for tests and the seed output
func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(model.User{}).
		Where("email = ?", email).
		Count(&n).
		Error

	return n, err
}

func (r *UserRepository) first(ctx context.Context, query string, args ...any) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch user, %w", err)
	}

	return &u, nil
}

// ReplaceAll deletes every user and inserts users in a single transaction
func (r *UserRepository) ReplaceAll(ctx context.Context, users []*model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.User{}).Error; err != nil {
			return fmt.Errorf("failed to clear users, %w", err)
		}

		for _, u := range users {
			if err := tx.Create(u).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errs.ErrDuplicateEmail
				}

				return fmt.Errorf("failed to create user, %w", err)
			}
		}

		return nil
	})
}
