package ladder

// Set scores for sets 1 and 2 are regular padel sets (0..7). The optional
// third set is a super tie-break and only needs to be non-negative.
const maxRegularSetScore = 7

// AdjudicateSets decides the match winner from a set-score submission.
// Returns true when the challenger won. Pure function: no side effects.
//
// Rules: sets 1 and 2 must not be tied; when each side takes one of the
// first two sets the third set is mandatory and must not be tied either.
// The winner takes the majority of the sets actually played.
func AdjudicateSets(s *SetScores) (challengerWon bool, err error) {
	if err := validateRegularSet(s.Set1Challenger, s.Set1Challenged); err != nil {
		return false, err
	}
	if err := validateRegularSet(s.Set2Challenger, s.Set2Challenged); err != nil {
		return false, err
	}

	setsChallenger, setsChallenged := 0, 0
	if s.Set1Challenger > s.Set1Challenged {
		setsChallenger++
	} else {
		setsChallenged++
	}
	if s.Set2Challenger > s.Set2Challenged {
		setsChallenger++
	} else {
		setsChallenged++
	}

	if setsChallenger == setsChallenged {
		// Split sets: the super tie-break decides.
		if !s.HasThirdSet() {
			return false, ErrMissingDecidingSet
		}
		a, b := *s.Set3Challenger, *s.Set3Challenged
		if a < 0 || b < 0 || a == b {
			return false, ErrInvalidScore
		}
		if a > b {
			setsChallenger++
		} else {
			setsChallenged++
		}
	}

	return setsChallenger > setsChallenged, nil
}

func validateRegularSet(a, b int) error {
	if a < 0 || b < 0 || a > maxRegularSetScore || b > maxRegularSetScore {
		return ErrInvalidScore
	}
	if a == b {
		return ErrInvalidScore
	}
	return nil
}
