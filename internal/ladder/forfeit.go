package ladder

import (
	"context"
	"fmt"
	"time"
)

// SweepExpired resolves Pendiente challenges created more than the grace
// period ago as walkovers: the challenger is awarded the win and the usual
// slot (or promotion) swap is applied. Returns the number resolved.
//
// The sweep is invoked lazily at the start of every lifecycle entry point
// rather than from a background timer, so staleness is bounded by read
// frequency. Per-challenge failures are logged and skipped: one corrupt
// record must not block the rest of the sweep.
func (s *Service) SweepExpired(ctx context.Context, now time.Time) int {
	cutoff := now.Add(-s.rules.ForfeitGrace)
	expired, err := s.store.PendingCreatedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Warn("forfeit sweep: list pending failed", "error", err)
		return 0
	}

	resolved := 0
	for i := range expired {
		c := &expired[i]
		if err := s.forfeit(ctx, c, now); err != nil {
			s.logger.Warn("forfeit sweep: challenge skipped", "desafio_id", c.ID, "error", err)
			continue
		}
		resolved++
	}
	if resolved > 0 {
		s.logger.Info("forfeit sweep resolved stale challenges", "count", resolved)
		if s.sweepHook != nil {
			s.sweepHook(resolved)
		}
	}
	return resolved
}

func (s *Service) forfeit(ctx context.Context, c *Challenge, now time.Time) error {
	challenger, challenged, err := s.challengePairs(ctx, c)
	if err != nil {
		return err
	}

	// Integrity guard: a cross-category challenge should never have been
	// created. Leave it Pendiente for manual review instead of swapping.
	if !SameCategory(challenger, challenged) {
		return fmt.Errorf("category mismatch between pairs %d and %d", challenger.ID, challenged.ID)
	}

	// The walkover swap follows the same rules as a played result; a
	// promotion swap only applies while still structurally eligible.
	swap := true
	if challenger.Group != challenged.Group {
		if err := s.elig.CheckPromotion(ctx, challenger, challenged); err != nil {
			swap = false
		}
	}

	winnerID := challenger.ID
	c.WinnerID = &winnerID
	played := NewDate(now)
	c.PlayedDate = &played
	c.Status = StatusPlayed

	ApplyRanking(c, challenger, challenged, swap)

	if err := s.store.ApplyResult(ctx, c, challenger, challenged); err != nil {
		return fmt.Errorf("apply walkover: %w", err)
	}
	return nil
}
