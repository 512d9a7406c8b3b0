package push

import (
	"context"
	"log/slog"
	"time"
)

// Worker drains the push outbox on a fixed interval. Wake forces an
// immediate drain between ticks.
type Worker struct {
	store       *Store
	sender      *FCMSender
	logger      *slog.Logger
	interval    time.Duration
	batchSize   int
	maxAttempts int
	wake        chan struct{}
}

// NewWorker builds a dispatch worker. A nil sender is valid and turns sends
// into logged no-ops.
func NewWorker(store *Store, sender *FCMSender, logger *slog.Logger, interval time.Duration, batchSize, maxAttempts int) *Worker {
	return &Worker{
		store:       store,
		sender:      sender,
		logger:      logger,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		wake:        make(chan struct{}, 1),
	}
}

// Wake requests an immediate drain. Safe to call from any goroutine; a wake
// that arrives while one is already queued is dropped.
func (w *Worker) Wake() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is cancelled. Intended to be called with `go`.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("push dispatch worker started", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
		case <-w.wake:
		case <-ctx.Done():
			w.logger.Info("push dispatch worker stopped")
			return
		}

		sent, failed, err := w.dispatchBatch(ctx)
		if err != nil {
			w.logger.Error("push dispatch error", "error", err)
		} else if sent+failed > 0 {
			w.logger.Info("push dispatch batch", "sent", sent, "failed", failed)
		}
	}
}

func (w *Worker) dispatchBatch(ctx context.Context) (sent, failed int, err error) {
	claimed, err := w.store.ClaimDue(ctx, w.batchSize)
	if err != nil {
		return 0, 0, err
	}

	for _, row := range claimed {
		tokens, tokErr := w.store.TokensByPlayers(ctx, []int{row.PlayerID})
		if tokErr != nil || len(tokens) == 0 {
			// A player without registered devices is not an error worth
			// retrying; park the row immediately.
			_ = w.store.MarkFailed(ctx, row.ID, w.maxAttempts, w.maxAttempts)
			failed++
			continue
		}

		if sendErr := w.sender.SendMulti(ctx, tokens, row.Title, row.Body, row.Data); sendErr != nil {
			w.logger.Warn("push send failed", "outbox_id", row.ID, "error", sendErr)
			_ = w.store.MarkFailed(ctx, row.ID, row.Attempts, w.maxAttempts)
			failed++
		} else {
			_ = w.store.MarkSent(ctx, row.ID)
			sent++
		}
	}
	return sent, failed, nil
}
