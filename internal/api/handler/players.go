package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lidersalinas/ranking-padel-api/internal/api/respond"
	"github.com/lidersalinas/ranking-padel-api/internal/cache"
	"github.com/lidersalinas/ranking-padel-api/internal/ladder"
)

// ListPlayers lists every active player.
// @Summary List players
// @Tags jugadores
// @Produce json
// @Success 200 {array} ladder.Player
// @Router /jugadores [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "roster:players"
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLRoster, true)
		return
	}

	players, err := h.store.ActivePlayers(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	raw, err := json.Marshal(players)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	etag := h.cache.Set(cacheKey, raw, cache.TTLRoster)
	respond.WriteJSON(w, raw, etag, cache.TTLRoster, false)
}

// PlayerDetail returns a player together with their active pair, if any.
// @Summary Player detail
// @Tags jugadores
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /jugadores/{id}/detalle [get]
func (h *Handler) PlayerDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "player id must be a positive integer")
		return
	}

	player, err := h.store.PlayerByID(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	detail := map[string]interface{}{
		"jugador": player,
		"pareja":  nil,
	}
	pair, err := h.store.ActivePairByPlayer(r.Context(), id)
	if err == nil {
		detail["pareja"] = pair
	} else if !errors.Is(err, ladder.ErrNoActivePair) {
		respond.WriteDomainError(w, err)
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, detail)
}
