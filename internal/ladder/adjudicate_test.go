package ladder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestAdjudicateSets(t *testing.T) {
	tests := []struct {
		name          string
		scores        SetScores
		challengerWon bool
		wantErr       error
	}{
		{
			name:          "straight sets challenger",
			scores:        SetScores{Set1Challenger: 6, Set1Challenged: 3, Set2Challenger: 6, Set2Challenged: 4},
			challengerWon: true,
		},
		{
			name:          "straight sets challenged",
			scores:        SetScores{Set1Challenger: 3, Set1Challenged: 6, Set2Challenger: 4, Set2Challenged: 6},
			challengerWon: false,
		},
		{
			name: "split sets decided by tie-break for challenger",
			scores: SetScores{
				Set1Challenger: 6, Set1Challenged: 3,
				Set2Challenger: 3, Set2Challenged: 6,
				Set3Challenger: intp(10), Set3Challenged: intp(8),
			},
			challengerWon: true,
		},
		{
			name: "split sets decided by tie-break for challenged",
			scores: SetScores{
				Set1Challenger: 6, Set1Challenged: 3,
				Set2Challenger: 3, Set2Challenged: 6,
				Set3Challenger: intp(8), Set3Challenged: intp(10),
			},
			challengerWon: false,
		},
		{
			name:    "split sets without deciding set",
			scores:  SetScores{Set1Challenger: 6, Set1Challenged: 3, Set2Challenger: 3, Set2Challenged: 6},
			wantErr: ErrMissingDecidingSet,
		},
		{
			name:    "tied first set",
			scores:  SetScores{Set1Challenger: 6, Set1Challenged: 6, Set2Challenger: 6, Set2Challenged: 2},
			wantErr: ErrInvalidScore,
		},
		{
			name:    "tied second set",
			scores:  SetScores{Set1Challenger: 6, Set1Challenged: 2, Set2Challenger: 5, Set2Challenged: 5},
			wantErr: ErrInvalidScore,
		},
		{
			name: "tied tie-break",
			scores: SetScores{
				Set1Challenger: 6, Set1Challenged: 3,
				Set2Challenger: 3, Set2Challenged: 6,
				Set3Challenger: intp(10), Set3Challenged: intp(10),
			},
			wantErr: ErrInvalidScore,
		},
		{
			name:    "negative score",
			scores:  SetScores{Set1Challenger: -1, Set1Challenged: 6, Set2Challenger: 6, Set2Challenged: 2},
			wantErr: ErrInvalidScore,
		},
		{
			name:    "regular set above seven",
			scores:  SetScores{Set1Challenger: 8, Set1Challenged: 3, Set2Challenger: 6, Set2Challenged: 2},
			wantErr: ErrInvalidScore,
		},
		{
			name: "tie-break allows wide scores",
			scores: SetScores{
				Set1Challenger: 6, Set1Challenged: 4,
				Set2Challenger: 2, Set2Challenged: 6,
				Set3Challenger: intp(15), Set3Challenged: intp(13),
			},
			challengerWon: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			won, err := AdjudicateSets(&tt.scores)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.challengerWon, won)
		})
	}
}

func TestAdjudicateSetsIsPure(t *testing.T) {
	scores := SetScores{Set1Challenger: 6, Set1Challenged: 3, Set2Challenger: 6, Set2Challenged: 4}
	before := scores

	_, err := AdjudicateSets(&scores)

	require.NoError(t, err)
	assert.Equal(t, before, scores)
}
