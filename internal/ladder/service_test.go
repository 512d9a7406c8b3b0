package ladder

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, mid-week, so the whole test week is Jun 2 - Jun 8.
var testNow = time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)

func newTestService(store *memStore) (*Service, *recordingNotifier) {
	notifier := &recordingNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(store, notifier, DefaultRules(), logger)
	svc.now = func() time.Time { return testNow }
	return svc, notifier
}

// ladderFixture seeds one division with a challenger (pair 1, slot 5,
// players 101/102) and a challenged pair (pair 2, slot 3, players 201/202).
func ladderFixture() *memStore {
	store := newMemStore()
	store.putPair(activePair(1, "Masculino A", 5, 101, 102))
	store.putPair(activePair(2, "Masculino A", 3, 201, 202))
	return store
}

func TestCreateChallenge(t *testing.T) {
	store := ladderFixture()
	svc, notifier := newTestService(store)

	c, err := svc.Create(context.Background(), 101, CreateInput{
		ChallengedPairID: 2,
		Date:             mustDate(t, "2025-06-05"),
		Hour:             "18:00",
		Observation:      "cancha 2",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, c.Status)
	assert.Equal(t, 1, c.ChallengerID)
	assert.Equal(t, 2, c.ChallengedID)
	assert.Equal(t, "5 vs 3", c.Title)
	assert.True(t, c.WeekLimitOK)
	assert.Nil(t, c.WinnerID)

	require.Len(t, notifier.calls, 1)
	call := notifier.calls[0]
	assert.ElementsMatch(t, []int{101, 102, 201, 202}, call.playerIDs)
	assert.Equal(t, "created", call.data["type"])
	assert.Equal(t, "5 vs 3", call.data["titulo_desafio"])
}

func TestCreateChallengeGuards(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*memStore)
		player  int
		input   CreateInput
		wantErr error
	}{
		{
			name:    "acting player without active pair",
			player:  999,
			input:   CreateInput{ChallengedPairID: 2, Hour: "18:00"},
			wantErr: ErrNoActivePair,
		},
		{
			name:    "challenged pair missing",
			player:  101,
			input:   CreateInput{ChallengedPairID: 42, Hour: "18:00"},
			wantErr: ErrPairNotFound,
		},
		{
			name: "challenged pair inactive",
			mutate: func(s *memStore) {
				p := activePair(2, "Masculino A", 3, 201, 202)
				p.Active = false
				s.putPair(p)
			},
			player:  101,
			input:   CreateInput{ChallengedPairID: 2, Hour: "18:00"},
			wantErr: ErrPairNotFound,
		},
		{
			name:    "self challenge",
			player:  201,
			input:   CreateInput{ChallengedPairID: 2, Hour: "18:00"},
			wantErr: ErrSelfChallenge,
		},
		{
			name:    "half hour slot",
			player:  101,
			input:   CreateInput{ChallengedPairID: 2, Hour: "18:30"},
			wantErr: ErrInvalidTimeSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := ladderFixture()
			if tt.mutate != nil {
				tt.mutate(store)
			}
			svc, notifier := newTestService(store)
			tt.input.Date = mustDate(t, "2025-06-05")

			_, err := svc.Create(context.Background(), tt.player, tt.input)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, notifier.calls)
		})
	}
}

func TestAcceptAndReject(t *testing.T) {
	store := ladderFixture()
	store.putChallenge(Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2, Status: StatusPending, Date: mustDate(t, "2025-06-05"), CreatedAt: testNow})
	svc, _ := newTestService(store)
	ctx := context.Background()

	c, err := svc.Accept(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, c.Status)

	_, err = svc.Reject(ctx, 1)
	require.NoError(t, err)

	_, err = svc.Reject(ctx, 1)
	require.ErrorIs(t, err, ErrAlreadyRejected)

	_, err = svc.Accept(ctx, 99)
	require.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestAcceptPlayedChallenge(t *testing.T) {
	store := ladderFixture()
	store.putChallenge(Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2, Status: StatusPlayed, Date: mustDate(t, "2025-06-05"), CreatedAt: testNow})
	svc, _ := newTestService(store)

	_, err := svc.Accept(context.Background(), 1)
	require.ErrorIs(t, err, ErrAlreadyResolved)

	_, err = svc.Reject(context.Background(), 1)
	require.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestReschedule(t *testing.T) {
	store := ladderFixture()
	store.putChallenge(Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2, Status: StatusPending, Date: mustDate(t, "2025-06-03"), Hour: "18:00", CreatedAt: testNow})
	svc, notifier := newTestService(store)
	ctx := context.Background()

	c, err := svc.Reschedule(ctx, 202, 1, mustDate(t, "2025-06-06"), "19:00")

	require.NoError(t, err)
	assert.Equal(t, "2025-06-06", c.Date.Format(time.DateOnly))
	assert.Equal(t, "19:00", c.Hour)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "rescheduled", notifier.calls[0].data["type"])
}

func TestRescheduleGuards(t *testing.T) {
	store := ladderFixture()
	store.putChallenge(Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2, Status: StatusPending, Date: mustDate(t, "2025-06-03"), Hour: "18:00", CreatedAt: testNow})
	svc, _ := newTestService(store)
	ctx := context.Background()
	day := mustDate(t, "2025-06-06")

	_, err := svc.Reschedule(ctx, 999, 1, day, "19:00")
	require.ErrorIs(t, err, ErrNotAParticipant)

	_, err = svc.Reschedule(ctx, 101, 1, day, "19:15")
	require.ErrorIs(t, err, ErrInvalidTimeSlot)

	store.putChallenge(Challenge{ID: 2, ChallengerID: 1, ChallengedID: 2, Status: StatusAccepted, Date: mustDate(t, "2025-06-03"), CreatedAt: testNow})
	_, err = svc.Reschedule(ctx, 101, 2, day, "19:00")
	require.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestRescheduleWithinSameWeekExcludesItself(t *testing.T) {
	store := ladderFixture()
	// Both of the pair's weekly slots are used; one is this challenge.
	store.putChallenge(Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2, Status: StatusPending, Date: mustDate(t, "2025-06-03"), Hour: "18:00", CreatedAt: testNow})
	store.putChallenge(Challenge{ID: 2, ChallengerID: 9, ChallengedID: 1, Status: StatusAccepted, Date: mustDate(t, "2025-06-07"), Hour: "10:00", CreatedAt: testNow})
	svc, _ := newTestService(store)

	_, err := svc.Reschedule(context.Background(), 101, 1, mustDate(t, "2025-06-05"), "18:00")

	require.NoError(t, err)
}

func TestSubmitResultChallengerWins(t *testing.T) {
	store := ladderFixture()
	store.putChallenge(Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2, Status: StatusAccepted, Date: mustDate(t, "2025-06-03"), Hour: "18:00", CreatedAt: testNow})
	svc, notifier := newTestService(store)
	ctx := context.Background()

	c, err := svc.SubmitResult(ctx, 101, 1, &SetScores{
		Set1Challenger: 6, Set1Challenged: 3,
		Set2Challenger: 6, Set2Challenged: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPlayed, c.Status)
	require.NotNil(t, c.WinnerID)
	assert.Equal(t, 1, *c.WinnerID)
	assert.True(t, c.SwapApplied)
	assert.True(t, c.RankingApplied)
	require.NotNil(t, c.PlayedDate)
	assert.Equal(t, "2025-06-04", c.PlayedDate.Format(time.DateOnly))
	assert.Equal(t, 5, *c.ChallengerPosOld)
	assert.Equal(t, 3, *c.ChallengedPosOld)
	assert.Equal(t, 3, *c.SlotAtStake)

	// Positions swapped in the store.
	winner, err := store.PairByID(ctx, 1)
	require.NoError(t, err)
	loser, err := store.PairByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, *winner.Position)
	assert.Equal(t, 5, *loser.Position)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "result", notifier.calls[0].data["type"])
	assert.Equal(t, "1", notifier.calls[0].data["ganador_pareja_id"])
}

func TestSubmitResultChallengerLoses(t *testing.T) {
	store := ladderFixture()
	store.putChallenge(Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2, Status: StatusAccepted, Date: mustDate(t, "2025-06-03"), Hour: "18:00", CreatedAt: testNow})
	svc, _ := newTestService(store)
	ctx := context.Background()

	c, err := svc.SubmitResult(ctx, 201, 1, &SetScores{
		Set1Challenger: 3, Set1Challenged: 6,
		Set2Challenger: 2, Set2Challenged: 6,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPlayed, c.Status)
	assert.Equal(t, 2, *c.WinnerID)
	assert.False(t, c.SwapApplied)
	assert.True(t, c.RankingApplied)

	challenger, err := store.PairByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, *challenger.Position)
}

func TestSubmitResultRoundTrip(t *testing.T) {
	store := ladderFixture()
	store.putChallenge(Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2, Status: StatusAccepted, Date: mustDate(t, "2025-06-03"), Hour: "18:00", CreatedAt: testNow})
	svc, _ := newTestService(store)
	ctx := context.Background()

	_, err := svc.SubmitResult(ctx, 101, 1, &SetScores{
		Set1Challenger: 6, Set1Challenged: 3,
		Set2Challenger: 3, Set2Challenged: 6,
		Set3Challenger: intp(10), Set3Challenged: intp(8),
	})
	require.NoError(t, err)

	fetched, err := svc.GetPublic(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusPlayed, fetched.Status)
	require.NotNil(t, fetched.WinnerID)
	assert.Contains(t, []int{1, 2}, *fetched.WinnerID)
	assert.True(t, fetched.RankingApplied)
	require.NotNil(t, fetched.Set3Challenger)
	assert.Equal(t, 10, *fetched.Set3Challenger)
}

func TestSubmitResultGuards(t *testing.T) {
	store := ladderFixture()
	store.putChallenge(Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2, Status: StatusAccepted, Date: mustDate(t, "2025-06-03"), Hour: "18:00", CreatedAt: testNow})
	svc, _ := newTestService(store)
	ctx := context.Background()
	scores := &SetScores{Set1Challenger: 6, Set1Challenged: 3, Set2Challenger: 6, Set2Challenged: 4}

	_, err := svc.SubmitResult(ctx, 999, 1, scores)
	require.ErrorIs(t, err, ErrNotAParticipant)

	_, err = svc.SubmitResult(ctx, 101, 1, &SetScores{Set1Challenger: 6, Set1Challenged: 6, Set2Challenger: 6, Set2Challenged: 4})
	require.ErrorIs(t, err, ErrInvalidScore)

	// A rule failure must not have mutated anything.
	c, err := store.ChallengeByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, c.Status)

	_, err = svc.SubmitResult(ctx, 101, 1, scores)
	require.NoError(t, err)

	_, err = svc.SubmitResult(ctx, 101, 1, scores)
	require.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestSubmitResultPromotion(t *testing.T) {
	store := newMemStore()
	seedGroup(store, "Masculino A", 100, 10)
	seedGroup(store, "Masculino B", 200, 8)
	// B rank 1 (pair 201) challenged A last place (pair 110).
	store.putChallenge(Challenge{ID: 1, ChallengerID: 201, ChallengedID: 110, Status: StatusAccepted, Date: mustDate(t, "2025-06-03"), Hour: "18:00", CreatedAt: testNow})
	svc, _ := newTestService(store)
	ctx := context.Background()

	c, err := svc.SubmitResult(ctx, 201*100+1, 1, &SetScores{
		Set1Challenger: 6, Set1Challenged: 2,
		Set2Challenger: 6, Set2Challenged: 3,
	})
	require.NoError(t, err)
	assert.True(t, c.SwapApplied)

	promoted, err := store.PairByID(ctx, 201)
	require.NoError(t, err)
	relegated, err := store.PairByID(ctx, 110)
	require.NoError(t, err)
	assert.Equal(t, "Masculino A", promoted.Group)
	assert.Equal(t, 10, *promoted.Position)
	assert.Equal(t, "Masculino B", relegated.Group)
	assert.Equal(t, 1, *relegated.Position)
}

func TestSubmitResultPromotionNoLongerEligible(t *testing.T) {
	store := newMemStore()
	seedGroup(store, "Masculino A", 100, 10)
	seedGroup(store, "Masculino B", 200, 8)
	store.putChallenge(Challenge{ID: 1, ChallengerID: 201, ChallengedID: 110, Status: StatusAccepted, Date: mustDate(t, "2025-06-03"), Hour: "18:00", CreatedAt: testNow})

	// Ranks shifted since creation: the challenger dropped to B rank 5.
	shifted, _ := store.PairByID(context.Background(), 201)
	shifted.Position = intp(5)
	store.putPair(*shifted)

	svc, _ := newTestService(store)

	_, err := svc.SubmitResult(context.Background(), 201*100+1, 1, &SetScores{
		Set1Challenger: 6, Set1Challenged: 2,
		Set2Challenger: 6, Set2Challenged: 3,
	})
	require.ErrorIs(t, err, ErrInterdivisionNotAllowed)
}

func TestGetParticipantOnly(t *testing.T) {
	store := ladderFixture()
	store.putChallenge(Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2, Status: StatusPending, Date: mustDate(t, "2025-06-05"), CreatedAt: testNow})
	svc, _ := newTestService(store)
	ctx := context.Background()

	_, err := svc.Get(ctx, 101, 1)
	require.NoError(t, err)

	_, err = svc.Get(ctx, 999, 1)
	require.ErrorIs(t, err, ErrNotAParticipant)

	got, err := svc.GetPublic(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID)
}

func TestListUpcomingFiltersTerminalStates(t *testing.T) {
	store := ladderFixture()
	store.putChallenge(Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2, Status: StatusPending, Date: mustDate(t, "2025-06-05"), CreatedAt: testNow})
	store.putChallenge(Challenge{ID: 2, ChallengerID: 1, ChallengedID: 2, Status: StatusAccepted, Date: mustDate(t, "2025-06-06"), CreatedAt: testNow})
	store.putChallenge(Challenge{ID: 3, ChallengerID: 1, ChallengedID: 2, Status: StatusRejected, Date: mustDate(t, "2025-06-07"), CreatedAt: testNow})
	store.putChallenge(Challenge{ID: 4, ChallengerID: 1, ChallengedID: 2, Status: StatusPlayed, Date: mustDate(t, "2025-06-08"), CreatedAt: testNow})
	svc, _ := newTestService(store)

	got, err := svc.ListUpcoming(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
}

func TestListMine(t *testing.T) {
	store := ladderFixture()
	store.putPair(activePair(3, "Masculino A", 4, 301, 302))
	store.putChallenge(Challenge{ID: 1, ChallengerID: 1, ChallengedID: 2, Status: StatusPending, Date: mustDate(t, "2025-06-05"), CreatedAt: testNow})
	store.putChallenge(Challenge{ID: 2, ChallengerID: 3, ChallengedID: 2, Status: StatusPending, Date: mustDate(t, "2025-06-06"), CreatedAt: testNow})
	svc, _ := newTestService(store)

	mine, err := svc.ListMine(context.Background(), 101)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 1, mine[0].ID)

	both, err := svc.ListMine(context.Background(), 201)
	require.NoError(t, err)
	assert.Len(t, both, 2)
}
