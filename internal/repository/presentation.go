package repository

import (
	"comply/media-api/internal/errs"
	"comply/media-api/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type PresentationRepository struct {
	db *gorm.DB
}

func NewPresentationRepository(db *gorm.DB) *PresentationRepository {
	return &PresentationRepository{db: db}
}

func (r *PresentationRepository) Create(ctx context.Context, p *model.Presentation) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create presentation, %w", err)
	}

	return nil
}

func (r *PresentationRepository) Find(ctx context.Context, moduleID string) ([]model.Presentation, error) {
	q := r.db.WithContext(ctx).Order("created_at desc")

	if moduleID != "" {
		q = q.Where("module_id = ?", moduleID)
	}

	ppts := []model.Presentation{}
	if err := q.Find(&ppts).Error; err != nil {
		return nil, fmt.Errorf("failed to list presentations, %w", err)
	}

	return ppts, nil
}

func (r *PresentationRepository) FindByID(ctx context.Context, id string) (*model.Presentation, error) {
	var p model.Presentation

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}

		return nil, fmt.Errorf("failed to fetch presentation, %w", err)
	}

	return &p, nil
}

func (r *PresentationRepository) Save(ctx context.Context, p *model.Presentation) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("failed to update presentation, %w", err)
	}

	return nil
}

func (r *PresentationRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(model.Presentation{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete presentation, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}

	return nil
}
