package service

import (
	"comply/media-api/internal/model"
	"comply/media-api/internal/repository"
	"comply/media-api/internal/storage"
	"comply/media-api/internal/upload"
	"context"

	"go.uber.org/zap"
)

// VideoChanges holds the metadata fields a PATCH may touch, nil means keep
type VideoChanges struct {
	Title      *string
	Duration   *string
	Type       *model.VideoType
	ModuleID   *string
	ModuleName *string
}

type VideoService struct {
	videos   *repository.VideoRepository
	pipeline *upload.Pipeline
	storage  storage.Storage
	category upload.Category
}

func NewVideoService(r *repository.VideoRepository, p *upload.Pipeline, s storage.Storage, maxSize int64) *VideoService {
	return &VideoService{
		videos:   r,
		pipeline: p,
		storage:  s,
		category: upload.VideoCategory(maxSize),
	}
}

// Create admits the file and records v with the stored file's details. Any
// file fields already set on v are overwritten.
func (s *VideoService) Create(ctx context.Context, file upload.Upload, v *model.Video) error {
	sf, err := s.pipeline.Admit(ctx, file, s.category)
	if err != nil {
		return err
	}

	applyVideoFile(v, sf)

	if err := s.videos.Create(ctx, v); err != nil {
		zap.L().Warn("Video stored without metadata", zap.String("locator", sf.Locator), zap.Error(err))
		return err
	}

	return nil
}

// List filters by module first, then by type. An unknown type lists everything.
func (s *VideoService) List(ctx context.Context, moduleID, typ string) ([]model.Video, error) {
	if moduleID != "" {
		return s.videos.Find(ctx, moduleID, "")
	}

	switch t := model.VideoType(typ); t {
	case model.VideoTypeModule, model.VideoTypeBasic:
		return s.videos.Find(ctx, "", t)
	}

	return s.videos.Find(ctx, "", "")
}

func (s *VideoService) Get(ctx context.Context, id string) (*model.Video, error) {
	return s.videos.FindByID(ctx, id)
}

// Update applies ch and, when file is set, swaps in a newly admitted file.
// The previous file stays in storage.
func (s *VideoService) Update(ctx context.Context, id string, ch VideoChanges, file *upload.Upload) (*model.Video, error) {
	v, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if ch.Title != nil {
		v.Title = *ch.Title
	}
	if ch.Duration != nil {
		v.Duration = *ch.Duration
	}
	if ch.Type != nil {
		v.Type = *ch.Type
	}
	if ch.ModuleID != nil {
		v.ModuleID = ch.ModuleID
	}
	if ch.ModuleName != nil {
		v.ModuleName = ch.ModuleName
	}

	if file != nil {
		sf, err := s.pipeline.Admit(ctx, *file, s.category)
		if err != nil {
			return nil, err
		}

		applyVideoFile(v, sf)
	}

	if err := s.videos.Save(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

// Delete removes the record only
func (s *VideoService) Delete(ctx context.Context, id string) error {
	return s.videos.Delete(ctx, id)
}

// Open returns the record and its stored file. The caller closes the body.
func (s *VideoService) Open(ctx context.Context, id string) (*model.Video, *storage.Object, error) {
	v, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	obj, err := openLocator(ctx, s.storage, v.FileURL)
	if err != nil {
		return nil, nil, err
	}

	return v, obj, nil
}

func applyVideoFile(v *model.Video, sf *upload.StoredFile) {
	v.FileURL = sf.Locator
	v.FileName = sf.OriginalFilename
	v.FileSize = sf.SizeBytes
	v.MimeType = sf.MimeType
}
