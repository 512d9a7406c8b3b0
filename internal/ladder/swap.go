package ladder

// ApplyRanking mutates the ladder for an adjudicated result: it snapshots
// both pairs' pre-swap positions into the challenge, then — only when the
// challenger won — exchanges the two slots. Same-division results swap the
// position values; cross-division (promotion) results swap group AND
// position, moving the winner fully into the loser's ladder identity.
//
// Idempotent per challenge: once the swap flag is set a second invocation is
// a no-op, so a repeated submission or sweep can never double-apply.
// Mutation happens in memory; persisting challenge and pairs atomically is
// Store.ApplyResult's job.
func ApplyRanking(c *Challenge, challenger, challenged *Pair, challengerWon bool) {
	if c.SwapApplied {
		return
	}

	c.ChallengerPosOld = clonePos(challenger.Position)
	c.ChallengedPosOld = clonePos(challenged.Position)
	c.RefreshSlotAtStake()

	if challengerWon {
		if challenger.Group == challenged.Group {
			challenger.Position, challenged.Position =
				clonePos(challenged.Position), clonePos(challenger.Position)
		} else {
			// Promotion: full identity swap in the ladder.
			challenger.Group, challenged.Group = challenged.Group, challenger.Group
			challenger.Position, challenged.Position =
				clonePos(challenged.Position), clonePos(challenger.Position)
		}
		c.SwapApplied = true
	} else {
		c.SwapApplied = false
	}

	c.RankingApplied = true
}

func clonePos(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
