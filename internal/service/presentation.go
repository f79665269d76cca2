package service

import (
	"comply/media-api/internal/errs"
	"comply/media-api/internal/model"
	"comply/media-api/internal/repository"
	"comply/media-api/internal/storage"
	"comply/media-api/internal/upload"
	"context"
	"fmt"

	"go.uber.org/zap"
)

type PresentationChanges struct {
	Title      *string
	Slides     *int
	ModuleID   *string
	ModuleName *string
}

type PresentationService struct {
	presentations *repository.PresentationRepository
	pipeline      *upload.Pipeline
	storage       storage.Storage
	category      upload.Category
}

func NewPresentationService(r *repository.PresentationRepository, p *upload.Pipeline, s storage.Storage, maxSize int64) *PresentationService {
	return &PresentationService{
		presentations: r,
		pipeline:      p,
		storage:       s,
		category:      upload.PresentationCategory(maxSize),
	}
}

func (s *PresentationService) Create(ctx context.Context, file upload.Upload, p *model.Presentation) error {
	sf, err := s.pipeline.Admit(ctx, file, s.category)
	if err != nil {
		return err
	}

	applyPresentationFile(p, sf)

	if err := s.presentations.Create(ctx, p); err != nil {
		zap.L().Warn("Presentation stored without metadata", zap.String("locator", sf.Locator), zap.Error(err))
		return err
	}

	return nil
}

func (s *PresentationService) List(ctx context.Context, moduleID string) ([]model.Presentation, error) {
	return s.presentations.Find(ctx, moduleID)
}

func (s *PresentationService) Get(ctx context.Context, id string) (*model.Presentation, error) {
	return s.presentations.FindByID(ctx, id)
}

func (s *PresentationService) Update(ctx context.Context, id string, ch PresentationChanges, file *upload.Upload) (*model.Presentation, error) {
	p, err := s.presentations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if ch.Title != nil {
		p.Title = *ch.Title
	}
	if ch.Slides != nil {
		p.Slides = *ch.Slides
	}
	if ch.ModuleID != nil {
		p.ModuleID = *ch.ModuleID
	}
	if ch.ModuleName != nil {
		p.ModuleName = ch.ModuleName
	}

	if file != nil {
		sf, err := s.pipeline.Admit(ctx, *file, s.category)
		if err != nil {
			return nil, err
		}

		applyPresentationFile(p, sf)
	}

	if err := s.presentations.Save(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *PresentationService) Delete(ctx context.Context, id string) error {
	return s.presentations.Delete(ctx, id)
}

func (s *PresentationService) Open(ctx context.Context, id string) (*model.Presentation, *storage.Object, error) {
	p, err := s.presentations.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	obj, err := openLocator(ctx, s.storage, p.FileURL)
	if err != nil {
		return nil, nil, err
	}

	return p, obj, nil
}

func applyPresentationFile(p *model.Presentation, sf *upload.StoredFile) {
	p.FileURL = sf.Locator
	p.FileName = sf.OriginalFilename
	p.FileSize = sf.SizeBytes
	p.MimeType = sf.MimeType
}

func openLocator(ctx context.Context, s storage.Storage, locator string) (*storage.Object, error) {
	key, err := storage.KeyFromLocator(locator)
	if err != nil {
		return nil, fmt.Errorf("%w: record points to %q, %v", errs.ErrStorageFailure, locator, err)
	}

	return s.Open(ctx, key)
}
