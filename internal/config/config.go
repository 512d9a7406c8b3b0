// Package config provides centralized configuration loaded from environment
// variables. Shared by cmd/api and cmd/admin.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Ladder rules
	MaxSlotGap       int
	WeeklyMatchLimit int
	PromotionWindow  int
	ForfeitGraceDays int

	// Auth (magic links)
	JWTSecret      string
	JWTIssuer      string
	SessionTTL     time.Duration
	MagicLinkTTL   time.Duration
	MagicLinkBase  string
	AdminAPISecret string

	// Push
	FCMCredentialsFile string
	PushDispatchEvery  time.Duration
	PushBatchSize      int
	PushMaxAttempts    int

	// Cache
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", envOr("NEON_DATABASE_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or NEON_DATABASE_URL must be set")
	}

	jwtSecret := envOr("JWT_SECRET", "")
	environment := envOr("ENVIRONMENT", "development")
	if jwtSecret == "" {
		if environment == "production" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		jwtSecret = "dev-secret-change-me"
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: environment,
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		MaxSlotGap:       envInt("MAX_SLOT_GAP", 3),
		WeeklyMatchLimit: envInt("WEEKLY_MATCH_LIMIT", 2),
		PromotionWindow:  envInt("PROMOTION_WINDOW", 3),
		ForfeitGraceDays: envInt("FORFEIT_GRACE_DAYS", 3),

		JWTSecret:      jwtSecret,
		JWTIssuer:      envOr("JWT_ISSUER", "ranking-padel-api"),
		SessionTTL:     time.Duration(envInt("SESSION_TTL_HOURS", 24*30)) * time.Hour,
		MagicLinkTTL:   time.Duration(envInt("MAGIC_LINK_TTL_MINUTES", 15)) * time.Minute,
		MagicLinkBase:  envOr("MAGIC_LINK_BASE_URL", "http://localhost:5173/auth"),
		AdminAPISecret: envOr("ADMIN_API_SECRET", ""),

		FCMCredentialsFile: envOr("FCM_CREDENTIALS_FILE", ""),
		PushDispatchEvery:  time.Duration(envInt("PUSH_DISPATCH_SECONDS", 15)) * time.Second,
		PushBatchSize:      envInt("PUSH_BATCH_SIZE", 50),
		PushMaxAttempts:    envInt("PUSH_MAX_ATTEMPTS", 5),

		CacheEnabled: envBool("CACHE_ENABLED", true),
		CacheTTL:     time.Duration(envInt("CACHE_TTL_SECONDS", 60)) * time.Second,
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ForfeitGrace returns the walkover grace period as a duration.
func (c *Config) ForfeitGrace() time.Duration {
	return time.Duration(c.ForfeitGraceDays) * 24 * time.Hour
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
