package ladder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairCategory(t *testing.T) {
	tests := []struct {
		name string
		pair Pair
		want string
	}{
		{name: "explicit masculine", pair: Pair{Gender: "M", Group: "Femenino A"}, want: "masculino"},
		{name: "explicit feminine lowercase", pair: Pair{Gender: "f", Group: "Masculino B"}, want: "femenino"},
		{name: "label fallback", pair: Pair{Group: "Masculino B"}, want: "masculino"},
		{name: "label fallback mixed case", pair: Pair{Group: "FEMENINO A"}, want: "femenino"},
		{name: "unknown gender falls back to label", pair: Pair{Gender: "X", Group: "Masculino A"}, want: "masculino"},
		{name: "empty group", pair: Pair{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pair.Category())
		})
	}
}

func TestPairDivision(t *testing.T) {
	tests := []struct {
		group string
		want  string
	}{
		{group: "Masculino A", want: "A"},
		{group: "femenino b", want: "B"},
		{group: "Masculino", want: ""},
		{group: "", want: ""},
	}
	for _, tt := range tests {
		p := Pair{Group: tt.group}
		assert.Equal(t, tt.want, p.Division(), "group %q", tt.group)
	}
}

func TestValidHour(t *testing.T) {
	assert.True(t, ValidHour("18:00"))
	assert.True(t, ValidHour("09:00"))
	assert.True(t, ValidHour("18:00:00"))
	assert.False(t, ValidHour("18:30"))
	assert.False(t, ValidHour("18:00:30"))
	assert.False(t, ValidHour("25:00"))
	assert.False(t, ValidHour("siesta"))
	assert.False(t, ValidHour(""))
}

func TestChallengeTitle(t *testing.T) {
	withPos := activePair(12, "Masculino A", 5, 101, 102)
	better := activePair(7, "Masculino A", 3, 201, 202)
	assert.Equal(t, "5 vs 3", ChallengeTitle(&withPos, &better))

	noPos := Pair{ID: 12, Group: "Masculino A"}
	assert.Equal(t, "12 vs 7", ChallengeTitle(&noPos, &better))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := mustDate(t, "2025-06-04")

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-04"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Equal(d.Time))
}

func TestRefreshSlotAtStake(t *testing.T) {
	c := Challenge{ChallengerPosOld: intp(5), ChallengedPosOld: intp(3)}
	c.RefreshSlotAtStake()
	require.NotNil(t, c.SlotAtStake)
	assert.Equal(t, 3, *c.SlotAtStake)

	c = Challenge{ChallengerPosOld: intp(5)}
	c.RefreshSlotAtStake()
	require.NotNil(t, c.SlotAtStake)
	assert.Equal(t, 5, *c.SlotAtStake)

	c = Challenge{}
	c.RefreshSlotAtStake()
	assert.Nil(t, c.SlotAtStake)
}

func TestParticipantIDs(t *testing.T) {
	a := activePair(1, "Masculino A", 5, 101, 102)
	b := activePair(2, "Masculino A", 3, 201, 202)
	assert.Equal(t, []int{101, 102, 201, 202}, ParticipantIDs(&a, &b))
}
