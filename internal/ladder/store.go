package ladder

import (
	"context"
	"time"
)

// Store is the persistence interface the rules engine depends on. Every
// mutating call is expected to be atomic; ApplyResult in particular must
// write the challenge and both pair rows in a single transaction so the
// dense-positions-per-group invariant never becomes observable mid-swap.
type Store interface {
	// Pairs
	PairByID(ctx context.Context, id int) (*Pair, error)
	ActivePairByPlayer(ctx context.Context, playerID int) (*Pair, error)
	ActivePairsByGroup(ctx context.Context, group string) ([]Pair, error)
	MaxActivePosition(ctx context.Context, group string) (int, error)

	// Challenges
	ChallengeByID(ctx context.Context, id int) (*Challenge, error)
	CreateChallenge(ctx context.Context, c *Challenge) error
	UpdateChallenge(ctx context.Context, c *Challenge) error
	// ApplyResult persists a resolved challenge together with both pairs'
	// position/group updates in one transaction.
	ApplyResult(ctx context.Context, c *Challenge, challenger, challenged *Pair) error

	ChallengesByStatus(ctx context.Context, statuses ...string) ([]Challenge, error)
	ChallengesByPair(ctx context.Context, pairID int) ([]Challenge, error)
	// ChallengesByPlayer lists challenges where any of the player's pairs
	// participates, optionally filtered by status set and minimum date.
	ChallengesByPlayer(ctx context.Context, playerID int, statuses []string, since time.Time) ([]Challenge, error)
	// CountWeekChallenges counts a pair's challenges in Pendiente, Aceptado
	// or Jugado whose scheduled date falls in [weekStart, weekEnd). The
	// challenge with excludeID is not counted (0 disables the exclusion).
	CountWeekChallenges(ctx context.Context, pairID int, weekStart, weekEnd Date, excludeID int) (int, error)
	PendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]Challenge, error)
}

// Notifier delivers push notifications to players. Implementations are
// fire-and-forget: delivery happens after the ranking transaction commits
// and a failed send must never surface to the caller.
type Notifier interface {
	Notify(ctx context.Context, playerIDs []int, title, body string, data map[string]string)
}

// NopNotifier discards all notifications. Used by the admin CLI and tests.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, []int, string, string, map[string]string) {}
