package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lidersalinas/ranking-padel-api/internal/api/respond"
	"github.com/lidersalinas/ranking-padel-api/internal/cache"
)

// RankingPositions returns every group's positions as a compact table:
// group label -> ordered list of {posicion, pareja_id}.
// @Summary Ranking positions
// @Description Compact position table for every active group. Cached with a short TTL and invalidated on every swap.
// @Tags ranking
// @Produce json
// @Success 200 {object} map[string][]map[string]int
// @Router /ranking/posiciones [get]
func (h *Handler) RankingPositions(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "ranking:posiciones"
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, h.cfg.CacheTTL, true)
		return
	}

	groups, err := h.store.Groups(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	table := make(map[string][]map[string]int, len(groups))
	for _, g := range groups {
		pairs, err := h.store.ActivePairsByGroup(r.Context(), g)
		if err != nil {
			respond.WriteDomainError(w, err)
			return
		}
		rows := make([]map[string]int, 0, len(pairs))
		for _, p := range pairs {
			if p.Position == nil {
				continue
			}
			rows = append(rows, map[string]int{
				"posicion":  *p.Position,
				"pareja_id": p.ID,
			})
		}
		table[g] = rows
	}

	raw, err := json.Marshal(table)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	etag := h.cache.Set(cacheKey, raw, h.cfg.CacheTTL)
	respond.WriteJSON(w, raw, etag, h.cfg.CacheTTL, false)
}
