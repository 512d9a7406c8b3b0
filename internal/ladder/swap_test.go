package ladder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRankingSameGroupWin(t *testing.T) {
	challenger := activePair(1, "Masculino A", 5, 101, 102)
	challenged := activePair(2, "Masculino A", 3, 201, 202)
	c := Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2}

	ApplyRanking(&c, &challenger, &challenged, true)

	assert.Equal(t, 3, *challenger.Position)
	assert.Equal(t, 5, *challenged.Position)
	assert.Equal(t, "Masculino A", challenger.Group)
	assert.True(t, c.SwapApplied)
	assert.True(t, c.RankingApplied)
	require.NotNil(t, c.ChallengerPosOld)
	assert.Equal(t, 5, *c.ChallengerPosOld)
	assert.Equal(t, 3, *c.ChallengedPosOld)
	require.NotNil(t, c.SlotAtStake)
	assert.Equal(t, 3, *c.SlotAtStake)
}

func TestApplyRankingLossKeepsPositions(t *testing.T) {
	challenger := activePair(1, "Masculino A", 5, 101, 102)
	challenged := activePair(2, "Masculino A", 3, 201, 202)
	c := Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2}

	ApplyRanking(&c, &challenger, &challenged, false)

	assert.Equal(t, 5, *challenger.Position)
	assert.Equal(t, 3, *challenged.Position)
	assert.False(t, c.SwapApplied)
	assert.True(t, c.RankingApplied)
	assert.Equal(t, 5, *c.ChallengerPosOld)
	assert.Equal(t, 3, *c.ChallengedPosOld)
}

func TestApplyRankingPromotionSwapsGroupAndSlot(t *testing.T) {
	challenger := activePair(1, "Masculino B", 1, 101, 102)
	challenged := activePair(2, "Masculino A", 10, 201, 202)
	c := Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2}

	ApplyRanking(&c, &challenger, &challenged, true)

	assert.Equal(t, "Masculino A", challenger.Group)
	assert.Equal(t, 10, *challenger.Position)
	assert.Equal(t, "Masculino B", challenged.Group)
	assert.Equal(t, 1, *challenged.Position)
	assert.True(t, c.SwapApplied)
	assert.Equal(t, 1, *c.SlotAtStake)
}

func TestApplyRankingIdempotent(t *testing.T) {
	challenger := activePair(1, "Masculino A", 5, 101, 102)
	challenged := activePair(2, "Masculino A", 3, 201, 202)
	c := Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2}

	ApplyRanking(&c, &challenger, &challenged, true)
	// A second application must not swap back.
	ApplyRanking(&c, &challenger, &challenged, true)

	assert.Equal(t, 3, *challenger.Position)
	assert.Equal(t, 5, *challenged.Position)
	assert.Equal(t, 5, *c.ChallengerPosOld)
}

func TestApplyRankingUnknownPositions(t *testing.T) {
	challenger := Pair{ID: 1, Group: "Masculino A", Active: true}
	challenged := Pair{ID: 2, Group: "Masculino A", Active: true}
	c := Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2}

	ApplyRanking(&c, &challenger, &challenged, true)

	assert.Nil(t, challenger.Position)
	assert.Nil(t, challenged.Position)
	assert.Nil(t, c.SlotAtStake)
	assert.True(t, c.SwapApplied)
	assert.True(t, c.RankingApplied)
}
