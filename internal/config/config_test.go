package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCacheSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/ranking_test")
	t.Setenv("CACHE_ENABLED", "")
	t.Setenv("CACHE_TTL_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)

	t.Setenv("CACHE_TTL_SECONDS", "120")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("NEON_DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadRequiresJWTSecretInProduction(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/ranking_test")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
