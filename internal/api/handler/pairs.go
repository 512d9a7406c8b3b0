package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lidersalinas/ranking-padel-api/internal/api/respond"
	"github.com/lidersalinas/ranking-padel-api/internal/cache"
	"github.com/lidersalinas/ranking-padel-api/internal/ladder"
)

func pairID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "pair id must be a positive integer")
		return 0, false
	}
	return id, true
}

// PairCard is a ranked pair enriched with player names, the shape the
// ranking screens render directly.
type PairCard struct {
	ladder.Pair
	Player1Name string `json:"jugador1_nombre"`
	Player2Name string `json:"jugador2_nombre"`
}

func (h *Handler) buildCards(r *http.Request, pairs []ladder.Pair) ([]PairCard, error) {
	ids := make([]int, 0, len(pairs)*2)
	for _, p := range pairs {
		ids = append(ids, p.Player1ID, p.Player2ID)
	}
	players, err := h.store.PlayersByIDs(r.Context(), ids)
	if err != nil {
		return nil, err
	}

	cards := make([]PairCard, 0, len(pairs))
	for _, p := range pairs {
		card := PairCard{Pair: p}
		if pl, ok := players[p.Player1ID]; ok {
			card.Player1Name = pl.FullName()
		}
		if pl, ok := players[p.Player2ID]; ok {
			card.Player2Name = pl.FullName()
		}
		cards = append(cards, card)
	}
	return cards, nil
}

type registerPairRequest struct {
	Player1ID int    `json:"jugador1_id"`
	Player2ID int    `json:"jugador2_id"`
	CaptainID int    `json:"capitan_id"`
	Group     string `json:"grupo"`
	Gender    string `json:"genero"`
}

// RegisterPair registers a new pair at the bottom of its group's ladder.
// @Summary Register pair
// @Description Creates an active pair slotted at max position + 1 in its group. Both players must exist and be distinct; the captain must be one of them.
// @Tags parejas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body registerPairRequest true "Pair registration"
// @Success 201 {object} ladder.Pair
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /parejas/registrar [post]
func (h *Handler) RegisterPair(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.actingPlayer(w, r); !ok {
		return
	}

	var req registerPairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "malformed JSON body")
		return
	}
	if req.Player1ID == req.Player2ID {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PAIR", "a pair needs two distinct players")
		return
	}
	if req.CaptainID != req.Player1ID && req.CaptainID != req.Player2ID {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_CAPTAIN", "the captain must be one of the pair's players")
		return
	}
	if req.Group == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_GROUP", "grupo is required")
		return
	}

	for _, id := range []int{req.Player1ID, req.Player2ID} {
		if _, err := h.store.PlayerByID(r.Context(), id); err != nil {
			respond.WriteDomainError(w, err)
			return
		}
	}

	pair := &ladder.Pair{
		Player1ID: req.Player1ID,
		Player2ID: req.Player2ID,
		CaptainID: req.CaptainID,
		Group:     req.Group,
		Gender:    req.Gender,
	}
	if err := h.store.CreatePair(r.Context(), pair); err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	h.invalidateRankingCaches()
	respond.WriteJSONObject(w, http.StatusCreated, pair)
}

// ListPairs lists every active pair across all groups.
// @Summary List pairs
// @Tags parejas
// @Produce json
// @Success 200 {array} ladder.Pair
// @Router /parejas [get]
func (h *Handler) ListPairs(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.Groups(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	var pairs []ladder.Pair
	for _, g := range groups {
		groupPairs, err := h.store.ActivePairsByGroup(r.Context(), g)
		if err != nil {
			respond.WriteDomainError(w, err)
			return
		}
		pairs = append(pairs, groupPairs...)
	}
	respond.WriteJSONObject(w, http.StatusOK, pairs)
}

// GroupRanking returns a group's ladder ordered by position.
// @Summary Group ranking
// @Tags parejas
// @Produce json
// @Param grupo path string true "Group label, e.g. Masculino A"
// @Success 200 {array} PairCard
// @Router /parejas/ranking/{grupo} [get]
func (h *Handler) GroupRanking(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "grupo")
	if group == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_GROUP", "grupo is required")
		return
	}

	cacheKey := fmt.Sprintf("ranking:%s", group)
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, h.cfg.CacheTTL, true)
		return
	}

	pairs, err := h.store.ActivePairsByGroup(r.Context(), group)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	cards, err := h.buildCards(r, pairs)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	raw, err := json.Marshal(cards)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	etag := h.cache.Set(cacheKey, raw, h.cfg.CacheTTL)
	respond.WriteJSON(w, raw, etag, h.cfg.CacheTTL, false)
}

// ListChallengeable lists the pairs the acting player's pair may challenge
// right now.
// @Summary List challengeable pairs
// @Description Filters the acting pair's group (and, for division B leaders, the promotion window of division A) through the eligibility rules with today's date.
// @Tags parejas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PairCard
// @Failure 404 {object} respond.ErrorResponse
// @Router /parejas/desafiables [get]
func (h *Handler) ListChallengeable(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.actingPlayer(w, r)
	if !ok {
		return
	}

	mine, err := h.store.ActivePairByPlayer(r.Context(), playerID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	candidates, err := h.store.ActivePairsByGroup(r.Context(), mine.Group)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	// Division B pairs can also reach into division A's promotion window.
	if mine.Division() == "B" {
		upper := ladder.GroupLabel(mine.Category(), "A")
		upperPairs, err := h.store.ActivePairsByGroup(r.Context(), upper)
		if err == nil {
			candidates = append(candidates, upperPairs...)
		}
	}

	today := ladder.NewDate(h.svc.Now())
	var eligible []ladder.Pair
	for i := range candidates {
		c := &candidates[i]
		if c.ID == mine.ID {
			continue
		}
		if err := h.svc.Eligibility().Validate(r.Context(), mine, c, today, 0); err == nil {
			eligible = append(eligible, *c)
		}
	}

	cards, err := h.buildCards(r, eligible)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, cards)
}

// PairCards returns all groups' ladders as render-ready cards.
// @Summary Pair cards
// @Tags parejas
// @Produce json
// @Success 200 {object} map[string][]PairCard
// @Router /parejas/cards [get]
func (h *Handler) PairCards(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "cards:all"
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

	byGroup := make(map[string][]PairCard, len(groups))
	for _, g := range groups {
		pairs, err := h.store.ActivePairsByGroup(r.Context(), g)
		if err != nil {
			respond.WriteDomainError(w, err)
			return
		}
		cards, err := h.buildCards(r, pairs)
		if err != nil {
			respond.WriteDomainError(w, err)
			return
		}
		byGroup[g] = cards
	}

	raw, err := json.Marshal(byGroup)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	etag := h.cache.Set(cacheKey, raw, h.cfg.CacheTTL)
	respond.WriteJSON(w, raw, etag, h.cfg.CacheTTL, false)
}

// PairHistory returns a pair's full challenge history.
// @Summary Pair challenge history
// @Tags parejas
// @Produce json
// @Param id path int true "Pair ID"
// @Success 200 {array} ladder.Challenge
// @Router /parejas/{id}/historial [get]
func (h *Handler) PairHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pairID(w, r)
	if !ok {
		return
	}
	challenges, err := h.svc.ListByPair(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, challenges)
}

// PairDetail returns a pair with its players and recent challenges.
// @Summary Pair detail
// @Tags parejas
// @Produce json
// @Param id path int true "Pair ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /parejas/{id}/detalle [get]
func (h *Handler) PairDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pairID(w, r)
	if !ok {
		return
	}

	pair, err := h.store.PairByID(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	players, err := h.store.PlayersByIDs(r.Context(), []int{pair.Player1ID, pair.Player2ID})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	challenges, err := h.svc.ListByPair(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"pareja":    pair,
		"jugadores": []ladder.Player{players[pair.Player1ID], players[pair.Player2ID]},
		"desafios":  challenges,
	})
}
