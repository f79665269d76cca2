package internal

import (
	"comply/media-api/config"
	"comply/media-api/internal/repository"
	"comply/media-api/internal/service"
	"comply/media-api/internal/storage"
	"comply/media-api/internal/upload"
	"comply/media-api/pkg/security"
	"fmt"

	"gorm.io/gorm"
)

type Deps struct {
	Config        *config.Config
	DB            *gorm.DB
	Tokens        *security.TokenIssuer
	Revocations   *repository.RevocationRepository
	Auth          *service.AuthService
	Videos        *service.VideoService
	Presentations *service.PresentationService
}

// NewDeps wires the services on top of an open database and storage backend
func NewDeps(cfg *config.Config, db *gorm.DB, store storage.Storage) (*Deps, error) {
	tokens, err := security.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer, %w", err)
	}

	users := repository.NewUserRepository(db)
	revocations := repository.NewRevocationRepository(db)
	hasher := security.NewHasher(cfg.Security.HashAlgorithm, cfg.Security.BcryptCost)
	pipeline := upload.New(store, "")

	return &Deps{
		Config:        cfg,
		DB:            db,
		Tokens:        tokens,
		Revocations:   revocations,
		Auth:          service.NewAuthService(users, revocations, hasher, tokens),
		Videos:        service.NewVideoService(repository.NewVideoRepository(db), pipeline, store, cfg.Upload.Video.MaxSize),
		Presentations: service.NewPresentationService(repository.NewPresentationRepository(db), pipeline, store, cfg.Upload.Presentation.MaxSize),
	}, nil
}
