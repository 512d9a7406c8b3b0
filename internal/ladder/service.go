package ladder

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"
)

// Service orchestrates the challenge lifecycle: Pendiente → Aceptado |
// Rechazado | Jugado (by result or forfeit). Every entry point runs the lazy
// forfeit sweep first so expired challenges never surface as still pending.
type Service struct {
	store    Store
	notifier Notifier
	rules    Rules
	elig     *Eligibility
	logger   *slog.Logger

	// now is swappable for tests.
	now func() time.Time

	// sweepHook fires after a sweep applies at least one walkover.
	sweepHook func(resolved int)
}

// NewService wires the lifecycle service over a store and notifier.
func NewService(store Store, notifier Notifier, rules Rules, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		store:    store,
		notifier: notifier,
		rules:    rules,
		elig:     NewEligibility(store, rules),
		logger:   logger,
		now:      time.Now,
	}
}

// Eligibility exposes the rule checker, e.g. for the admin CLI.
func (s *Service) Eligibility() *Eligibility { return s.elig }

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.now() }

// OnSweep registers a callback invoked whenever a sweep resolves at least
// one challenge. The HTTP layer uses it to drop cached rankings, since
// walkover swaps land outside any mutation handler.
func (s *Service) OnSweep(fn func(resolved int)) { s.sweepHook = fn }

// --------------------------------------------------------------------------
// Create
// --------------------------------------------------------------------------

// CreateInput is a challenge creation request. The challenger pair is never
// part of the payload: it is derived from the acting player's active pair.
type CreateInput struct {
	ChallengedPairID int    `json:"retada_pareja_id"`
	Date             Date   `json:"fecha"`
	Hour             string `json:"hora"`
	Observation      string `json:"observacion,omitempty"`
}

// Create validates and persists a new Pendiente challenge, then notifies the
// four participating players.
func (s *Service) Create(ctx context.Context, actingPlayerID int, in CreateInput) (*Challenge, error) {
	s.sweep(ctx)

	challenger, err := s.store.ActivePairByPlayer(ctx, actingPlayerID)
	if err != nil {
		return nil, err
	}

	challenged, err := s.store.PairByID(ctx, in.ChallengedPairID)
	if err != nil {
		return nil, err
	}
	if !challenged.Active {
		return nil, ErrPairNotFound
	}
	if challenger.ID == challenged.ID {
		return nil, ErrSelfChallenge
	}
	if !ValidHour(in.Hour) {
		return nil, ErrInvalidTimeSlot
	}

	if err := s.elig.Validate(ctx, challenger, challenged, in.Date, 0); err != nil {
		return nil, err
	}

	c := &Challenge{
		ChallengerID: challenger.ID,
		ChallengedID: challenged.ID,
		Status:       StatusPending,
		Date:         in.Date,
		Hour:         in.Hour,
		Observation:  in.Observation,
		WeekLimitOK:  true,
		Title:        ChallengeTitle(challenger, challenged),
	}
	if err := s.store.CreateChallenge(ctx, c); err != nil {
		return nil, fmt.Errorf("create challenge: %w", err)
	}

	s.notify(ctx, c, challenger, challenged, "created",
		"Nuevo desafío", fmt.Sprintf("Desafío %s el %s a las %s", c.Title, c.Date.Format(time.DateOnly), c.Hour))
	return c, nil
}

// --------------------------------------------------------------------------
// Accept / Reject
// --------------------------------------------------------------------------

// Accept marks a challenge as Aceptado. Played challenges cannot be
// re-opened.
func (s *Service) Accept(ctx context.Context, challengeID int) (*Challenge, error) {
	s.sweep(ctx)

	c, err := s.store.ChallengeByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if c.Status == StatusPlayed {
		return nil, ErrAlreadyResolved
	}

	c.Status = StatusAccepted
	if err := s.store.UpdateChallenge(ctx, c); err != nil {
		return nil, fmt.Errorf("accept challenge %d: %w", challengeID, err)
	}
	return c, nil
}

// Reject marks a challenge as Rechazado, a terminal state.
func (s *Service) Reject(ctx context.Context, challengeID int) (*Challenge, error) {
	s.sweep(ctx)

	c, err := s.store.ChallengeByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if c.Status == StatusPlayed {
		return nil, ErrAlreadyResolved
	}
	if c.Status == StatusRejected {
		return nil, ErrAlreadyRejected
	}

	c.Status = StatusRejected
	if err := s.store.UpdateChallenge(ctx, c); err != nil {
		return nil, fmt.Errorf("reject challenge %d: %w", challengeID, err)
	}
	return c, nil
}

// --------------------------------------------------------------------------
// Reschedule
// --------------------------------------------------------------------------

// Reschedule moves a Pendiente challenge to a new date and time slot. Only a
// participant may reschedule, and the challenge's own contribution to the
// weekly count is excluded from re-validation.
func (s *Service) Reschedule(ctx context.Context, actingPlayerID, challengeID int, date Date, hour string) (*Challenge, error) {
	s.sweep(ctx)

	c, err := s.store.ChallengeByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if c.Status == StatusRejected {
		return nil, ErrAlreadyRejected
	}
	if c.Status != StatusPending {
		return nil, ErrAlreadyResolved
	}

	challenger, challenged, err := s.challengePairs(ctx, c)
	if err != nil {
		return nil, err
	}
	if !challenger.HasPlayer(actingPlayerID) && !challenged.HasPlayer(actingPlayerID) {
		return nil, ErrNotAParticipant
	}
	if !ValidHour(hour) {
		return nil, ErrInvalidTimeSlot
	}
	if err := s.elig.Validate(ctx, challenger, challenged, date, c.ID); err != nil {
		return nil, err
	}

	c.Date = date
	c.Hour = hour
	if err := s.store.UpdateChallenge(ctx, c); err != nil {
		return nil, fmt.Errorf("reschedule challenge %d: %w", challengeID, err)
	}

	s.notify(ctx, c, challenger, challenged, "rescheduled",
		"Desafío reprogramado", fmt.Sprintf("Desafío %s movido al %s a las %s", c.Title, c.Date.Format(time.DateOnly), c.Hour))
	return c, nil
}

// --------------------------------------------------------------------------
// Submit result
// --------------------------------------------------------------------------

// SubmitResult adjudicates a set-score submission, applies the ranking
// mutation atomically with the challenge update, and notifies the outcome.
// Cross-division challenges re-check promotion eligibility because ranks may
// have shifted since creation.
func (s *Service) SubmitResult(ctx context.Context, actingPlayerID, challengeID int, sets *SetScores) (*Challenge, error) {
	s.sweep(ctx)

	c, err := s.store.ChallengeByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if c.Status == StatusPlayed {
		return nil, ErrAlreadyResolved
	}

	challenger, challenged, err := s.challengePairs(ctx, c)
	if err != nil {
		return nil, err
	}
	if !challenger.HasPlayer(actingPlayerID) && !challenged.HasPlayer(actingPlayerID) {
		return nil, ErrNotAParticipant
	}
	if !SameCategory(challenger, challenged) {
		return nil, ErrCategoryMismatch
	}
	if challenger.Group != challenged.Group {
		if err := s.elig.CheckPromotion(ctx, challenger, challenged); err != nil {
			return nil, err
		}
	}

	challengerWon, err := AdjudicateSets(sets)
	if err != nil {
		return nil, err
	}

	c.Set1Challenger, c.Set1Challenged = &sets.Set1Challenger, &sets.Set1Challenged
	c.Set2Challenger, c.Set2Challenged = &sets.Set2Challenger, &sets.Set2Challenged
	c.Set3Challenger, c.Set3Challenged = sets.Set3Challenger, sets.Set3Challenged

	winnerID := challenged.ID
	if challengerWon {
		winnerID = challenger.ID
	}
	c.WinnerID = &winnerID
	c.Status = StatusPlayed
	played := NewDate(s.now())
	c.PlayedDate = &played

	ApplyRanking(c, challenger, challenged, challengerWon)

	if err := s.store.ApplyResult(ctx, c, challenger, challenged); err != nil {
		return nil, fmt.Errorf("apply result for challenge %d: %w", challengeID, err)
	}

	s.notify(ctx, c, challenger, challenged, "result",
		"Resultado cargado", fmt.Sprintf("Desafío %s: resultado cargado", c.Title))
	return c, nil
}

// --------------------------------------------------------------------------
// Reads
// --------------------------------------------------------------------------

// ListUpcoming returns challenges in Pendiente or Aceptado.
func (s *Service) ListUpcoming(ctx context.Context) ([]Challenge, error) {
	s.sweep(ctx)
	return s.store.ChallengesByStatus(ctx, StatusPending, StatusAccepted)
}

// ListMineUpcoming returns the acting player's recent Pendiente, Aceptado
// and Jugado challenges (scheduled within the last week or later).
func (s *Service) ListMineUpcoming(ctx context.Context, playerID int) ([]Challenge, error) {
	s.sweep(ctx)
	since := s.now().AddDate(0, 0, -7)
	return s.store.ChallengesByPlayer(ctx, playerID, ActiveStatuses, since)
}

// ListMine returns every challenge the acting player participates in.
func (s *Service) ListMine(ctx context.Context, playerID int) ([]Challenge, error) {
	s.sweep(ctx)
	return s.store.ChallengesByPlayer(ctx, playerID, nil, time.Time{})
}

// ListByPair returns a pair's full challenge history.
func (s *Service) ListByPair(ctx context.Context, pairID int) ([]Challenge, error) {
	s.sweep(ctx)
	return s.store.ChallengesByPair(ctx, pairID)
}

// Get returns a challenge visible only to its participants.
func (s *Service) Get(ctx context.Context, actingPlayerID, challengeID int) (*Challenge, error) {
	s.sweep(ctx)

	c, err := s.store.ChallengeByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	challenger, challenged, err := s.challengePairs(ctx, c)
	if err != nil {
		return nil, err
	}
	if !challenger.HasPlayer(actingPlayerID) && !challenged.HasPlayer(actingPlayerID) {
		return nil, ErrNotAParticipant
	}
	return c, nil
}

// GetPublic returns a challenge without the participant restriction.
func (s *Service) GetPublic(ctx context.Context, challengeID int) (*Challenge, error) {
	s.sweep(ctx)
	return s.store.ChallengeByID(ctx, challengeID)
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func (s *Service) challengePairs(ctx context.Context, c *Challenge) (challenger, challenged *Pair, err error) {
	if challenger, err = s.store.PairByID(ctx, c.ChallengerID); err != nil {
		return nil, nil, err
	}
	if challenged, err = s.store.PairByID(ctx, c.ChallengedID); err != nil {
		return nil, nil, err
	}
	return challenger, challenged, nil
}

// notify fans out a push to the four participating players. Fire-and-forget:
// the Notifier contract guarantees a failed delivery never reaches us.
func (s *Service) notify(ctx context.Context, c *Challenge, challenger, challenged *Pair, event, title, body string) {
	data := map[string]string{
		"type":           event,
		"desafio_id":     strconv.Itoa(c.ID),
		"estado":         c.Status,
		"titulo_desafio": c.Title,
		"fecha":          c.Date.Format(time.DateOnly),
		"hora":           c.Hour,
	}
	if c.WinnerID != nil {
		data["ganador_pareja_id"] = strconv.Itoa(*c.WinnerID)
	}
	if challenger.Position != nil {
		data["pos_retadora"] = strconv.Itoa(*challenger.Position)
	}
	if challenged.Position != nil {
		data["pos_retada"] = strconv.Itoa(*challenged.Position)
	}
	s.notifier.Notify(ctx, ParticipantIDs(challenger, challenged), title, body, data)
}

func (s *Service) sweep(ctx context.Context) {
	s.SweepExpired(ctx, s.now())
}
