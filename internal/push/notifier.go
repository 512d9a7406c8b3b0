package push

import (
	"context"
	"log/slog"
)

// OutboxNotifier implements the ladder Notifier contract by enqueueing one
// outbox row per recipient. Enqueue failures are logged and swallowed: a
// lost notification must never fail the ranking operation that produced it.
type OutboxNotifier struct {
	store  *Store
	logger *slog.Logger
}

// NewOutboxNotifier wires a notifier over the push store.
func NewOutboxNotifier(store *Store, logger *slog.Logger) *OutboxNotifier {
	return &OutboxNotifier{store: store, logger: logger}
}

func (n *OutboxNotifier) Notify(ctx context.Context, playerIDs []int, title, body string, data map[string]string) {
	if len(playerIDs) == 0 {
		return
	}
	if err := n.store.Enqueue(ctx, playerIDs, title, body, data); err != nil {
		n.logger.Warn("push enqueue failed", "players", playerIDs, "error", err)
	}
}
