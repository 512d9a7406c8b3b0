// Package push manages device token registration and push delivery. Sends go
// through a database outbox: the ladder service enqueues rows in Notify and a
// background worker drains them, so the ranking transaction never waits on
// FCM.
package push

import (
	"context"
	"fmt"
	"time"

	"github.com/lidersalinas/ranking-padel-api/internal/db"
)

// Token is a registered device token.
type Token struct {
	PlayerID int    `json:"jugador_id"`
	Token    string `json:"token"`
	Platform string `json:"platform,omitempty"` // "ios" | "android" | "web"
}

// Store persists device tokens and the outbox queue.
type Store struct {
	db *db.Pool
}

// NewStore creates a Store over an initialized pool.
func NewStore(pool *db.Pool) *Store {
	return &Store{db: pool}
}

// RegisterToken upserts a device token for a player. Re-registering a token
// moves it to the new player and reactivates it.
func (s *Store) RegisterToken(ctx context.Context, t Token) error {
	if _, err := s.db.Exec(ctx, "upsert_push_token", t.PlayerID, t.Token, t.Platform); err != nil {
		return fmt.Errorf("register push token: %w", err)
	}
	return nil
}

// DeactivateToken disables a device token, e.g. on logout or when FCM
// reports it invalid.
func (s *Store) DeactivateToken(ctx context.Context, token string) error {
	if _, err := s.db.Exec(ctx, "deactivate_push_token", token); err != nil {
		return fmt.Errorf("deactivate push token: %w", err)
	}
	return nil
}

// TokensByPlayers returns the distinct active tokens for a set of players.
func (s *Store) TokensByPlayers(ctx context.Context, playerIDs []int) ([]string, error) {
	rows, err := s.db.Query(ctx, "tokens_by_players", playerIDs)
	if err != nil {
		return nil, fmt.Errorf("query push tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan push token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// --------------------------------------------------------------------------
// Outbox
// --------------------------------------------------------------------------

// Outbound is a claimed outbox row ready to send.
type Outbound struct {
	ID       int
	PlayerID int
	Title    string
	Body     string
	Data     map[string]string
	Attempts int
}

// Enqueue inserts one outbox row per player.
func (s *Store) Enqueue(ctx context.Context, playerIDs []int, title, body string, data map[string]string) error {
	for _, playerID := range playerIDs {
		var id int
		err := s.db.QueryRow(ctx, "outbox_enqueue", playerID, title, body, data).Scan(&id)
		if err != nil {
			return fmt.Errorf("enqueue push for player %d: %w", playerID, err)
		}
	}
	return nil
}

// ClaimDue atomically claims a batch of due outbox rows for sending.
// Uses FOR UPDATE SKIP LOCKED for safe concurrent dispatch.
func (s *Store) ClaimDue(ctx context.Context, limit int) ([]Outbound, error) {
	rows, err := s.db.Query(ctx, "outbox_claim_due", limit)
	if err != nil {
		return nil, fmt.Errorf("claim due pushes: %w", err)
	}
	defer rows.Close()

	var claimed []Outbound
	for rows.Next() {
		var o Outbound
		if err := rows.Scan(&o.ID, &o.PlayerID, &o.Title, &o.Body, &o.Data, &o.Attempts); err != nil {
			return nil, fmt.Errorf("scan claimed push: %w", err)
		}
		claimed = append(claimed, o)
	}
	return claimed, rows.Err()
}

// MarkSent marks an outbox row as successfully sent.
func (s *Store) MarkSent(ctx context.Context, id int) error {
	_, err := s.db.Exec(ctx, "outbox_mark_sent", id)
	return err
}

// MarkFailed reschedules a failed row, or parks it as failed once attempts
// reach maxAttempts. The retry delay doubles with each attempt.
func (s *Store) MarkFailed(ctx context.Context, id, attempts, maxAttempts int) error {
	backoff := time.Duration(1<<min(attempts, 6)) * time.Minute
	_, err := s.db.Exec(ctx, "outbox_mark_failed", id, maxAttempts, time.Now().Add(backoff))
	return err
}
