// Package postgres implements the ladder persistence interface over a pgx
// connection pool. All statements are prepared at connection time (see
// internal/db), so queries go by statement name.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lidersalinas/ranking-padel-api/internal/db"
	"github.com/lidersalinas/ranking-padel-api/internal/ladder"
)

// Store implements ladder.Store backed by Postgres.
type Store struct {
	db *db.Pool
}

// New creates a Store over an initialized pool.
func New(pool *db.Pool) *Store {
	return &Store{db: pool}
}

// --------------------------------------------------------------------------
// Pairs
// --------------------------------------------------------------------------

func (s *Store) PairByID(ctx context.Context, id int) (*ladder.Pair, error) {
	p, err := scanPair(s.db.QueryRow(ctx, "pair_by_id", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ladder.ErrPairNotFound
		}
		return nil, fmt.Errorf("query pair %d: %w", id, err)
	}
	return p, nil
}

func (s *Store) ActivePairByPlayer(ctx context.Context, playerID int) (*ladder.Pair, error) {
	p, err := scanPair(s.db.QueryRow(ctx, "active_pair_by_player", playerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ladder.ErrNoActivePair
		}
		return nil, fmt.Errorf("query active pair for player %d: %w", playerID, err)
	}
	return p, nil
}

func (s *Store) ActivePairsByGroup(ctx context.Context, group string) ([]ladder.Pair, error) {
	rows, err := s.db.Query(ctx, "active_pairs_by_group", group)
	if err != nil {
		return nil, fmt.Errorf("query pairs in group %q: %w", group, err)
	}
	defer rows.Close()

	var pairs []ladder.Pair
	for rows.Next() {
		p, err := scanPair(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		pairs = append(pairs, *p)
	}
	return pairs, rows.Err()
}

func (s *Store) MaxActivePosition(ctx context.Context, group string) (int, error) {
	var max int
	if err := s.db.QueryRow(ctx, "max_active_position", group).Scan(&max); err != nil {
		return 0, fmt.Errorf("query max position in group %q: %w", group, err)
	}
	return max, nil
}

// Groups lists the distinct group labels that have active pairs.
func (s *Store) Groups(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, "ranking_groups")
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// CreatePair registers a new active pair at the bottom slot of its group.
func (s *Store) CreatePair(ctx context.Context, p *ladder.Pair) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create pair: %w", err)
	}
	defer tx.Rollback(ctx)

	var max int
	if err := tx.QueryRow(ctx, "max_active_position", p.Group).Scan(&max); err != nil {
		return fmt.Errorf("query max position in group %q: %w", p.Group, err)
	}
	pos := max + 1
	p.Position = &pos
	p.Active = true

	err = tx.QueryRow(ctx, "insert_pair",
		p.Player1ID, p.Player2ID, p.CaptainID, p.Group, p.Gender, p.Position,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert pair: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create pair: %w", err)
	}
	return nil
}

// RenumberGroup rewrites a group's active positions as a dense 1..n sequence
// preserving relative order. Admin maintenance for when a withdrawal leaves
// a hole in the ladder.
func (s *Store) RenumberGroup(ctx context.Context, group string) (int, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin renumber: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, "active_pairs_by_group", group)
	if err != nil {
		return 0, fmt.Errorf("query pairs in group %q: %w", group, err)
	}
	var ids []int
	for rows.Next() {
		p, err := scanPair(rows)
		if err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan pair: %w", err)
		}
		ids = append(ids, p.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	// Two passes: clear first so the unique (grupo, posicion) index never
	// sees a transient duplicate.
	for _, id := range ids {
		if _, err := tx.Exec(ctx, "update_pair_slot", id, group, nil); err != nil {
			return 0, fmt.Errorf("clear slot for pair %d: %w", id, err)
		}
	}
	for i, id := range ids {
		if _, err := tx.Exec(ctx, "update_pair_slot", id, group, i+1); err != nil {
			return 0, fmt.Errorf("renumber pair %d: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit renumber: %w", err)
	}
	return len(ids), nil
}

// --------------------------------------------------------------------------
// Challenges
// --------------------------------------------------------------------------

func (s *Store) ChallengeByID(ctx context.Context, id int) (*ladder.Challenge, error) {
	c, err := scanChallenge(s.db.QueryRow(ctx, "challenge_by_id", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ladder.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("query challenge %d: %w", id, err)
	}
	return c, nil
}

func (s *Store) CreateChallenge(ctx context.Context, c *ladder.Challenge) error {
	err := s.db.QueryRow(ctx, "insert_challenge",
		c.ChallengerID, c.ChallengedID, c.Status, c.Date.Time, c.Hour,
		c.WeekLimitOK, c.Title, c.Observation,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert challenge: %w", err)
	}
	return nil
}

func (s *Store) UpdateChallenge(ctx context.Context, c *ladder.Challenge) error {
	return s.updateChallenge(ctx, s.db, c)
}

// ApplyResult writes the resolved challenge and both pairs' slot updates in
// one transaction.
func (s *Store) ApplyResult(ctx context.Context, c *ladder.Challenge, challenger, challenged *ladder.Pair) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin apply result: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.updateChallenge(ctx, tx, c); err != nil {
		return err
	}
	if err := writePairSlots(ctx, tx, challenger, challenged); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit apply result: %w", err)
	}
	return nil
}

// slotExecer covers both the pool and an open transaction for slot writes.
type slotExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// writePairSlots persists both pairs' group and position in two passes,
// clearing both positions before writing the final values. The partial
// unique index on (grupo, posicion_actual) is checked per statement, so a
// one-pass swap would write the winner into a slot the loser still holds and
// fail with a duplicate key. Same ordering contract as RenumberGroup.
func writePairSlots(ctx context.Context, q slotExecer, pairs ...*ladder.Pair) error {
	for _, p := range pairs {
		if _, err := q.Exec(ctx, "update_pair_slot", p.ID, p.Group, nil); err != nil {
			return fmt.Errorf("clear pair %d slot: %w", p.ID, err)
		}
	}
	for _, p := range pairs {
		if _, err := q.Exec(ctx, "update_pair_slot", p.ID, p.Group, p.Position); err != nil {
			return fmt.Errorf("update pair %d slot: %w", p.ID, err)
		}
	}
	return nil
}

func (s *Store) ChallengesByStatus(ctx context.Context, statuses ...string) ([]ladder.Challenge, error) {
	rows, err := s.db.Query(ctx, "challenges_by_status", statuses)
	if err != nil {
		return nil, fmt.Errorf("query challenges by status: %w", err)
	}
	return collectChallenges(rows)
}

func (s *Store) ChallengesByPair(ctx context.Context, pairID int) ([]ladder.Challenge, error) {
	rows, err := s.db.Query(ctx, "challenges_by_pair", pairID)
	if err != nil {
		return nil, fmt.Errorf("query challenges for pair %d: %w", pairID, err)
	}
	return collectChallenges(rows)
}

func (s *Store) ChallengesByPlayer(ctx context.Context, playerID int, statuses []string, since time.Time) ([]ladder.Challenge, error) {
	var sinceArg any
	if !since.IsZero() {
		sinceArg = since
	}
	var statusArg any
	if len(statuses) > 0 {
		statusArg = statuses
	}

	rows, err := s.db.Query(ctx, "challenges_by_player", playerID, statusArg, sinceArg)
	if err != nil {
		return nil, fmt.Errorf("query challenges for player %d: %w", playerID, err)
	}
	return collectChallenges(rows)
}

func (s *Store) CountWeekChallenges(ctx context.Context, pairID int, weekStart, weekEnd ladder.Date, excludeID int) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, "count_week_challenges",
		pairID, ladder.ActiveStatuses, weekStart.Time, weekEnd.Time, excludeID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count week challenges for pair %d: %w", pairID, err)
	}
	return n, nil
}

func (s *Store) PendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]ladder.Challenge, error) {
	rows, err := s.db.Query(ctx, "pending_created_before", cutoff)
	if err != nil {
		return nil, fmt.Errorf("query stale pending challenges: %w", err)
	}
	return collectChallenges(rows)
}

// --------------------------------------------------------------------------
// Players
// --------------------------------------------------------------------------

func (s *Store) PlayerByID(ctx context.Context, id int) (*ladder.Player, error) {
	p, err := scanPlayer(s.db.QueryRow(ctx, "player_by_id", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ladder.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("query player %d: %w", id, err)
	}
	return p, nil
}

func (s *Store) PlayerByEmail(ctx context.Context, email string) (*ladder.Player, error) {
	p, err := scanPlayer(s.db.QueryRow(ctx, "player_by_email", email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ladder.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("query player by email: %w", err)
	}
	return p, nil
}

// PlayersByIDs returns the players for a set of ids, keyed by id.
func (s *Store) PlayersByIDs(ctx context.Context, ids []int) (map[int]ladder.Player, error) {
	if len(ids) == 0 {
		return map[int]ladder.Player{}, nil
	}
	rows, err := s.db.Query(ctx, "players_by_ids", ids)
	if err != nil {
		return nil, fmt.Errorf("query players by ids: %w", err)
	}
	defer rows.Close()

	players := make(map[int]ladder.Player, len(ids))
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players[p.ID] = *p
	}
	return players, rows.Err()
}

func (s *Store) ActivePlayers(ctx context.Context) ([]ladder.Player, error) {
	rows, err := s.db.Query(ctx, "players_active")
	if err != nil {
		return nil, fmt.Errorf("query active players: %w", err)
	}
	defer rows.Close()

	var players []ladder.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// rowQuerier covers both the pool and an open transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *Store) updateChallenge(ctx context.Context, q rowQuerier, c *ladder.Challenge) error {
	var playedDate any
	if c.PlayedDate != nil {
		playedDate = c.PlayedDate.Time
	}

	err := q.QueryRow(ctx, "update_challenge",
		c.ID, c.WinnerID, c.Status, c.Date.Time, c.Hour, playedDate,
		c.Set1Challenger, c.Set1Challenged,
		c.Set2Challenger, c.Set2Challenged,
		c.Set3Challenger, c.Set3Challenged,
		c.WeekLimitOK, c.SwapApplied, c.RankingApplied,
		c.ChallengerPosOld, c.ChallengedPosOld,
		c.Title, c.Observation,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ladder.ErrChallengeNotFound
		}
		return fmt.Errorf("update challenge %d: %w", c.ID, err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Row scanning
// --------------------------------------------------------------------------

func scanPair(row pgx.Row) (*ladder.Pair, error) {
	var p ladder.Pair
	err := row.Scan(
		&p.ID, &p.Player1ID, &p.Player2ID, &p.CaptainID,
		&p.Group, &p.Gender, &p.Position, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPlayer(row pgx.Row) (*ladder.Player, error) {
	var p ladder.Player
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Phone, &p.Email, &p.PhotoURL,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanChallenge(row pgx.Row) (*ladder.Challenge, error) {
	var (
		c          ladder.Challenge
		date       time.Time
		playedDate *time.Time
	)
	err := row.Scan(
		&c.ID, &c.ChallengerID, &c.ChallengedID, &c.WinnerID, &c.Status,
		&date, &c.Hour, &playedDate,
		&c.Set1Challenger, &c.Set1Challenged,
		&c.Set2Challenger, &c.Set2Challenged,
		&c.Set3Challenger, &c.Set3Challenged,
		&c.WeekLimitOK, &c.SwapApplied, &c.RankingApplied,
		&c.ChallengerPosOld, &c.ChallengedPosOld,
		&c.Title, &c.Observation, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Date = ladder.NewDate(date)
	if playedDate != nil {
		d := ladder.NewDate(*playedDate)
		c.PlayedDate = &d
	}
	c.RefreshSlotAtStake()
	return &c, nil
}

func collectChallenges(rows pgx.Rows) ([]ladder.Challenge, error) {
	defer rows.Close()

	var challenges []ladder.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		challenges = append(challenges, *c)
	}
	return challenges, rows.Err()
}
