package service

import (
	"comply/media-api/internal/repository"
	"context"
	"time"

	"go.uber.org/zap"
)

// TokenCleanup periodically drops revoked tokens that expired anyway, until
// ctx is done
func TokenCleanup(ctx context.Context, t time.Duration, r *repository.RevocationRepository) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", t))

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				purgeRevoked(ctx, r, now)
			}
		}
	}()
}

func purgeRevoked(ctx context.Context, r *repository.RevocationRepository, now time.Time) {
	n, err := r.PurgeExpired(ctx, now)
	if err != nil {
		zap.L().Error("Failed to cleanup revoked tokens", zap.Error(err))
		return
	}

	if n > 0 {
		zap.L().Debug("Cleaned up expired revoked tokens", zap.Int64("count", n))
	}
}
