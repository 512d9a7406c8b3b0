// Package listener provides a Postgres LISTEN/NOTIFY consumer that wakes the
// push dispatch worker as soon as a new outbox row lands. It holds a dedicated
// pgx connection (not from the pool) listening on the `push_outbox_nueva`
// channel, so enqueued notifications leave within a round-trip instead of
// waiting for the next dispatch tick.
package listener

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lidersalinas/ranking-padel-api/internal/push"
)

const (
	channel          = "push_outbox_nueva"
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// Start opens a dedicated connection and listens on the outbox channel. It
// reconnects automatically on connection loss. Blocks until ctx is cancelled.
// Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, worker *push.Worker, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, worker, logger)
		if ctx.Err() != nil {
			logger.Info("outbox listener stopped (context cancelled)")
			return
		}

		logger.Error("outbox listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, worker *push.Worker, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+channel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", channel, err)
	}
	logger.Info("outbox listener connected", "channel", channel)

	// After a (re)connect there may be rows enqueued while we were not
	// listening; drain once before waiting.
	worker.Wake()

	for {
		if _, err := conn.WaitForNotification(ctx); err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		worker.Wake()
	}
}
