package ladder

import (
	"context"
	"fmt"
	"time"
)

// --------------------------------------------------------------------------
// Rule thresholds — injected, never ambient globals
// --------------------------------------------------------------------------

// Rules holds the reglamento thresholds. A Rules value is immutable after
// construction and is injected into the eligibility checker, the lifecycle
// service and the forfeit sweeper.
type Rules struct {
	// MaxSlotGap is how many slots above itself a pair may challenge
	// within its own division.
	MaxSlotGap int
	// WeeklyMatchLimit caps Pendiente+Aceptado+Jugado challenges per pair
	// per Monday-to-Sunday week.
	WeeklyMatchLimit int
	// PromotionWindow is the rank window for cross-division challenges:
	// top N of division B against the bottom N of division A.
	PromotionWindow int
	// ForfeitGrace is how long a challenge may sit in Pendiente before the
	// sweep resolves it as a walkover for the challenger.
	ForfeitGrace time.Duration
}

// DefaultRules returns the official reglamento values.
func DefaultRules() Rules {
	return Rules{
		MaxSlotGap:       3,
		WeeklyMatchLimit: 2,
		PromotionWindow:  3,
		ForfeitGrace:     72 * time.Hour,
	}
}

// --------------------------------------------------------------------------
// Eligibility
// --------------------------------------------------------------------------

// Eligibility decides whether a challenge between two pairs is permitted.
type Eligibility struct {
	store Store
	rules Rules
}

// NewEligibility builds an eligibility checker over a store.
func NewEligibility(store Store, rules Rules) *Eligibility {
	return &Eligibility{store: store, rules: rules}
}

// Validate runs the eligibility checks in reglamento order, short-circuiting
// on the first failure: category match, weekly limit for both pairs, then
// position rules (same-division order and gap, or cross-division promotion
// window). excludeChallengeID removes a challenge from its own weekly count
// when re-validating a reschedule; pass 0 on creation.
func (e *Eligibility) Validate(ctx context.Context, challenger, challenged *Pair, proposedDate Date, excludeChallengeID int) error {
	if !SameCategory(challenger, challenged) {
		return ErrCategoryMismatch
	}

	if err := e.checkWeeklyLimit(ctx, challenger.ID, proposedDate, excludeChallengeID); err != nil {
		return err
	}
	if err := e.checkWeeklyLimit(ctx, challenged.ID, proposedDate, excludeChallengeID); err != nil {
		return err
	}

	if challenger.Group == challenged.Group {
		return e.checkSameDivision(challenger, challenged)
	}
	return e.CheckPromotion(ctx, challenger, challenged)
}

func (e *Eligibility) checkWeeklyLimit(ctx context.Context, pairID int, proposed Date, excludeID int) error {
	weekStart, weekEnd := WeekRange(proposed)
	n, err := e.store.CountWeekChallenges(ctx, pairID, weekStart, weekEnd, excludeID)
	if err != nil {
		return fmt.Errorf("count week challenges for pair %d: %w", pairID, err)
	}
	if n >= e.rules.WeeklyMatchLimit {
		return ErrWeeklyLimitExceeded
	}
	return nil
}

// checkSameDivision enforces that the challenged pair sits strictly above
// the challenger and no more than MaxSlotGap slots away. When either
// position is unknown the check passes: pairs without a slot are still being
// bootstrapped into the ladder and the reglamento does not block them.
func (e *Eligibility) checkSameDivision(challenger, challenged *Pair) error {
	if challenger.Position == nil || challenged.Position == nil {
		return nil
	}
	gap := *challenger.Position - *challenged.Position
	if gap <= 0 {
		return ErrPositionOrderViolation
	}
	if gap > e.rules.MaxSlotGap {
		return ErrMaxSlotGapExceeded
	}
	return nil
}

// CheckPromotion validates a cross-division challenge. Only promotion from
// division B to division A of the same category is structurally possible:
// either the direct match (B rank 1 against A's last place) or a top-window
// challenger against a bottom-window challenged pair. Also re-invoked on
// result submission, since ranks may have shifted after creation.
func (e *Eligibility) CheckPromotion(ctx context.Context, challenger, challenged *Pair) error {
	if challenger.Division() != "B" || challenged.Division() != "A" {
		return ErrInterdivisionNotAllowed
	}
	if challenger.Position == nil || challenged.Position == nil {
		return ErrInterdivisionNotAllowed
	}

	// The challenged pair lives in "<category> A"; its group gives us the
	// ladder whose last place anchors the bottom window.
	lastPlace, err := e.store.MaxActivePosition(ctx, challenged.Group)
	if err != nil {
		return fmt.Errorf("max active position in %q: %w", challenged.Group, err)
	}

	challengerRank := *challenger.Position
	challengedRank := *challenged.Position

	// Direct match: best of B against last of A, regardless of windows.
	if challengerRank == 1 && challengedRank == lastPlace {
		return nil
	}

	windowFloor := lastPlace - (e.rules.PromotionWindow - 1)
	if windowFloor < 1 {
		windowFloor = 1
	}
	if challengerRank >= 1 && challengerRank <= e.rules.PromotionWindow &&
		challengedRank >= windowFloor && challengedRank <= lastPlace {
		return nil
	}
	return ErrInterdivisionNotAllowed
}
