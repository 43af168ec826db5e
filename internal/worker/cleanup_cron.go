package worker

// cleanup_cron.go
// Background goroutine that periodically deletes expired refresh-token rows
// so the table does not grow without bound.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const cleanupTickInterval = time.Hour

// TokenCleaner is the slice of the auth service the cron needs.
type TokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// StartCleanupCron launches a background goroutine that ticks hourly and
// sweeps expired refresh tokens. It respects the context for graceful
// shutdown.
func StartCleanupCron(ctx context.Context, cleaner TokenCleaner) {
	go func() {
		ticker := time.NewTicker(cleanupTickInterval)
		defer ticker.Stop()

		log.Info().Msg("cleanup_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("cleanup_cron: shutting down")
				return
			case <-ticker.C:
				removed, err := cleaner.CleanupExpiredTokens(ctx)
				if err != nil {
					log.Error().Err(err).Msg("cleanup_cron: sweep failed")
					continue
				}
				if removed > 0 {
					log.Info().Int64("removed", removed).Msg("cleanup_cron: expired tokens removed")
				}
			}
		}
	}()
}
