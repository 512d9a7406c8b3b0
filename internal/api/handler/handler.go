// Package handler provides HTTP handlers for all API endpoints. Handlers are
// thin: lifecycle operations delegate to the ladder service, read endpoints
// query the store directly and lean on the in-memory cache.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lidersalinas/ranking-padel-api/internal/api/respond"
	"github.com/lidersalinas/ranking-padel-api/internal/auth"
	"github.com/lidersalinas/ranking-padel-api/internal/cache"
	"github.com/lidersalinas/ranking-padel-api/internal/config"
	"github.com/lidersalinas/ranking-padel-api/internal/db"
	"github.com/lidersalinas/ranking-padel-api/internal/ladder"
	"github.com/lidersalinas/ranking-padel-api/internal/push"
	"github.com/lidersalinas/ranking-padel-api/internal/store/postgres"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	svc    *ladder.Service
	store  *postgres.Store
	push   *push.Store
	auth   *auth.Service
	cache  *cache.Cache
	cfg    *config.Config
	pool   *db.Pool
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(svc *ladder.Service, store *postgres.Store, pushStore *push.Store, authSvc *auth.Service, c *cache.Cache, pool *db.Pool, cfg *config.Config, logger *slog.Logger) *Handler {
	h := &Handler{
		svc:    svc,
		store:  store,
		push:   pushStore,
		auth:   authSvc,
		cache:  c,
		cfg:    cfg,
		pool:   pool,
		logger: logger,
	}
	// Walkover swaps happen inside the lazy sweep, not in a mutation
	// handler, so the sweep itself has to drop the cached ladders.
	svc.OnSweep(func(int) { h.invalidateRankingCaches() })
	return h
}

// actingPlayer extracts the authenticated player id. Behind AuthMiddleware
// the id is always present; the guard covers misrouted handlers.
func (h *Handler) actingPlayer(w http.ResponseWriter, r *http.Request) (int, bool) {
	playerID, ok := auth.PlayerIDFromContext(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing session")
		return 0, false
	}
	return playerID, true
}

// invalidateRankingCaches drops cached ranking reads after a mutation.
func (h *Handler) invalidateRankingCaches() {
	h.cache.Invalidate("ranking:")
	h.cache.Invalidate("cards:")
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Ranking Padel API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
