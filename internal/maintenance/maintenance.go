// Package maintenance runs periodic background tasks as Go tickers.
// Replaces pg_cron — all scheduled work is driven from Go since the API is
// already a persistent, long-running service.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lidersalinas/ranking-padel-api/internal/ladder"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	SweepInterval   time.Duration // Resolve overdue pending challenges by walkover
	CleanupInterval time.Duration // Purge drained outbox rows and expired login tokens
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		SweepInterval:   1 * time.Hour,
		CleanupInterval: 6 * time.Hour,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
//
// The walkover sweep also runs lazily on every read/write path, so this
// ticker only matters for quiet periods when nobody is hitting the API.
func Start(ctx context.Context, pool *pgxpool.Pool, svc *ladder.Service, cfg Config, logger *slog.Logger) {
	logger.Info("maintenance tickers started",
		"sweep", cfg.SweepInterval,
		"cleanup", cfg.CleanupInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	if cfg.SweepInterval > 0 {
		t := time.NewTicker(cfg.SweepInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { sweep(ctx, svc, logger) })
	}

	if cfg.CleanupInterval > 0 {
		t := time.NewTicker(cfg.CleanupInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { cleanup(ctx, pool, logger) })
	}

	<-ctx.Done()
	logger.Info("maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// sweep resolves pending challenges that outlived the forfeit grace period.
func sweep(ctx context.Context, svc *ladder.Service, logger *slog.Logger) {
	if n := svc.SweepExpired(ctx, svc.Now()); n > 0 {
		logger.Info("maintenance: walkovers applied", "count", n)
	}
}

// cleanup removes push outbox rows older than 30 days that have been sent or
// failed, and magic-link tokens past their expiry.
func cleanup(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) {
	tag, err := pool.Exec(ctx, `
		DELETE FROM push_outbox
		WHERE status IN ('sent', 'failed')
		  AND created_at < NOW() - INTERVAL '30 days'`)
	if err != nil {
		logger.Warn("cleanup: failed to purge outbox rows", "error", err)
	} else if tag.RowsAffected() > 0 {
		logger.Info("cleanup: purged outbox rows", "count", tag.RowsAffected())
	}

	tag, err = pool.Exec(ctx, `
		DELETE FROM auth_tokens
		WHERE expires_at < NOW()`)
	if err != nil {
		logger.Warn("cleanup: failed to purge expired login tokens", "error", err)
	} else if tag.RowsAffected() > 0 {
		logger.Info("cleanup: purged expired login tokens", "count", tag.RowsAffected())
	}
}
