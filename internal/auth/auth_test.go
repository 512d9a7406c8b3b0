package auth

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(secret string) *Service {
	return &Service{
		secret:     []byte(secret),
		issuer:     "ranking-padel-api",
		sessionTTL: time.Hour,
		linkTTL:    15 * time.Minute,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
}

func TestSessionRoundTrip(t *testing.T) {
	svc := testService("secret")

	token, err := svc.issueSession(42)
	require.NoError(t, err)

	playerID, err := svc.ParseSession(token)
	require.NoError(t, err)
	assert.Equal(t, 42, playerID)
}

func TestSessionWrongSecret(t *testing.T) {
	token, err := testService("secret-a").issueSession(42)
	require.NoError(t, err)

	_, err = testService("secret-b").ParseSession(token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionWrongIssuer(t *testing.T) {
	issuing := testService("secret")
	issuing.issuer = "someone-else"
	token, err := issuing.issueSession(42)
	require.NoError(t, err)

	_, err = testService("secret").ParseSession(token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionExpired(t *testing.T) {
	svc := testService("secret")
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.issueSession(42)
	require.NoError(t, err)

	_, err = testService("secret").ParseSession(token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionGarbage(t *testing.T) {
	svc := testService("secret")

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.ParseSession(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	}
}
