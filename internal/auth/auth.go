// Package auth implements passwordless login: a short-lived single-use magic
// link is issued per email, and redeeming it yields a signed JWT session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"

	"github.com/lidersalinas/ranking-padel-api/internal/db"
	"github.com/lidersalinas/ranking-padel-api/internal/ladder"
)

var (
	// ErrInvalidLink covers expired, already-used and unknown magic links.
	ErrInvalidLink = errors.New("invalid or expired magic link")
	// ErrInvalidSession covers malformed, expired or tampered session tokens.
	ErrInvalidSession = errors.New("invalid session token")
)

// PlayerLookup is the slice of the player store the auth service needs.
type PlayerLookup interface {
	PlayerByEmail(ctx context.Context, email string) (*ladder.Player, error)
	PlayerByID(ctx context.Context, id int) (*ladder.Player, error)
}

// Service issues and redeems magic links and validates session tokens.
type Service struct {
	db      *db.Pool
	players PlayerLookup
	logger  *slog.Logger

	secret     []byte
	issuer     string
	sessionTTL time.Duration
	linkTTL    time.Duration
	linkBase   string

	now func() time.Time
}

// New wires the auth service.
func New(pool *db.Pool, players PlayerLookup, secret, issuer, linkBase string, sessionTTL, linkTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		db:         pool,
		players:    players,
		logger:     logger,
		secret:     []byte(secret),
		issuer:     issuer,
		sessionTTL: sessionTTL,
		linkTTL:    linkTTL,
		linkBase:   linkBase,
		now:        time.Now,
	}
}

// RequestLink creates a single-use login token for the player registered
// under email and returns the full magic link. Callers must not leak the
// link to anyone but the owner of the address.
func (s *Service) RequestLink(ctx context.Context, email string) (string, error) {
	player, err := s.players.PlayerByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	id := uuid.New()
	expires := s.now().Add(s.linkTTL)
	if _, err := s.db.Exec(ctx, "insert_auth_token", id, player.ID, expires); err != nil {
		return "", fmt.Errorf("store magic link: %w", err)
	}

	link := fmt.Sprintf("%s?token=%s", s.linkBase, id)
	s.logger.Info("magic link issued", "jugador_id", player.ID, "expires_at", expires)
	return link, nil
}

// Redeem consumes a magic link token and returns a signed session JWT plus
// the authenticated player. Each link works exactly once.
func (s *Service) Redeem(ctx context.Context, token string) (string, *ladder.Player, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return "", nil, ErrInvalidLink
	}

	var playerID int
	if err := s.db.QueryRow(ctx, "consume_auth_token", id).Scan(&playerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrInvalidLink
		}
		return "", nil, fmt.Errorf("consume magic link: %w", err)
	}

	player, err := s.players.PlayerByID(ctx, playerID)
	if err != nil {
		return "", nil, err
	}

	session, err := s.issueSession(player.ID)
	if err != nil {
		return "", nil, err
	}
	return session, player, nil
}

func (s *Service) issueSession(playerID int) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   strconv.Itoa(playerID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseSession validates a session token and returns the player id it was
// issued for.
func (s *Service) ParseSession(token string) (int, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidSession
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrInvalidSession
	}
	playerID, err := strconv.Atoi(claims.Subject)
	if err != nil || playerID <= 0 {
		return 0, ErrInvalidSession
	}
	return playerID, nil
}
