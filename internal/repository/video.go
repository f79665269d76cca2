package repository

import (
	"comply/media-api/internal/errs"
	"comply/media-api/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, v *model.Video) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to create video, %w", err)
	}

	return nil
}

// Find lists videos, newest first. Empty filter values are ignored.
func (r *VideoRepository) Find(ctx context.Context, moduleID string, typ model.VideoType) ([]model.Video, error) {
	q := r.db.WithContext(ctx).Order("created_at desc")

	if moduleID != "" {
		q = q.Where("module_id = ?", moduleID)
	}

	if typ != "" {
		q = q.Where("type = ?", typ)
	}

	videos := []model.Video{}
	if err := q.Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("failed to list videos, %w", err)
	}

	return videos, nil
}

func (r *VideoRepository) FindByID(ctx context.Context, id string) (*model.Video, error) {
	var v model.Video

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch video, %w", err)
	}

	return &v, nil
}

// Save writes every column of v back
func (r *VideoRepository) Save(ctx context.Context, v *model.Video) error {
	if err := r.db.WithContext(ctx).Save(v).Error; err != nil {
		return fmt.Errorf("failed to update video, %w", err)
	}

	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(model.Video{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete video, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}

	return nil
}
