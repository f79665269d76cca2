package main

import (
	"comply/media-api/app"
	"comply/media-api/config"
	"comply/media-api/db"
	"comply/media-api/internal"
	"comply/media-api/internal/repository"
	"comply/media-api/internal/service"
	"comply/media-api/internal/storage"
	"comply/media-api/pkg/logging"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Setup()
	if err != nil {
		return err
	}

	if err := logging.Setup(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("failed to set up logger, %w", err)
	}
	defer zap.L().Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(cfg.Database)
	if err != nil {
		return err
	}

	if cfg.Seed {
		if err := service.Seed(ctx, repository.NewUserRepository(database)); err != nil {
			return fmt.Errorf("failed to seed database, %w", err)
		}

		zap.L().Info("Database seeded")
		return nil
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize %s storage, %w", cfg.Storage.Type, err)
	}

	d, err := internal.NewDeps(cfg, database, store)
	if err != nil {
		return err
	}

	service.TokenCleanup(ctx, cfg.Security.RevocationCleanupInterval, d.Revocations)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Host.Port),
		Handler:           app.NewRouter(d),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("Server starting", zap.Int("port", cfg.Host.Port), zap.Bool("ssl", cfg.Host.SSL.Enabled))

		if cfg.Host.SSL.Enabled {
			errCh <- srv.ListenAndServeTLS(cfg.Host.SSL.CertificatePath, cfg.Host.SSL.CertificateKeyPath)
			return
		}

		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
