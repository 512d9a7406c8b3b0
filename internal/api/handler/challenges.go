package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lidersalinas/ranking-padel-api/internal/api/respond"
	"github.com/lidersalinas/ranking-padel-api/internal/ladder"
)

func challengeID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ID", "challenge id must be a positive integer")
		return 0, false
	}
	return id, true
}

// CreateChallenge creates a new challenge from the acting player's pair.
// @Summary Create challenge
// @Description Creates a Pendiente challenge from the acting player's active pair against another pair. Eligibility rules (category, weekly limit, position order, slot gap, promotion window) are enforced.
// @Tags desafios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ladder.CreateInput true "Challenge request"
// @Success 201 {object} ladder.Challenge
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /desafios [post]
func (h *Handler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.actingPlayer(w, r)
	if !ok {
		return
	}

	var in ladder.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "malformed JSON body")
		return
	}

	c, err := h.svc.Create(r.Context(), playerID, in)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusCreated, c)
}

// AcceptChallenge marks a pending challenge as accepted.
// @Summary Accept challenge
// @Tags desafios
// @Produce json
// @Security BearerAuth
// @Param id path int true "Challenge ID"
// @Success 200 {object} ladder.Challenge
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /desafios/{id}/aceptar [post]
func (h *Handler) AcceptChallenge(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.actingPlayer(w, r); !ok {
		return
	}
	id, ok := challengeID(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Accept(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, c)
}

// RejectChallenge marks a challenge as rejected.
// @Summary Reject challenge
// @Tags desafios
// @Produce json
// @Security BearerAuth
// @Param id path int true "Challenge ID"
// @Success 200 {object} ladder.Challenge
// @Failure 404 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /desafios/{id}/rechazar [post]
func (h *Handler) RejectChallenge(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.actingPlayer(w, r); !ok {
		return
	}
	id, ok := challengeID(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Reject(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, c)
}

type rescheduleRequest struct {
	Date ladder.Date `json:"fecha"`
	Hour string      `json:"hora"`
}

// RescheduleChallenge moves a pending challenge to a new date and hour.
// @Summary Reschedule challenge
// @Description Moves a Pendiente challenge. Only participants may reschedule; the new slot is re-validated against the eligibility rules with the challenge itself excluded from the weekly count.
// @Tags desafios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Challenge ID"
// @Param request body rescheduleRequest true "New date and hour"
// @Success 200 {object} ladder.Challenge
// @Failure 403 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /desafios/{id}/reprogramar [post]
func (h *Handler) RescheduleChallenge(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.actingPlayer(w, r)
	if !ok {
		return
	}
	id, ok := challengeID(w, r)
	if !ok {
		return
	}

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "malformed JSON body")
		return
	}

	c, err := h.svc.Reschedule(r.Context(), playerID, id, req.Date, req.Hour)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, c)
}

// SubmitResult records set scores for a challenge and applies the ranking.
// @Summary Submit result
// @Description Adjudicates the submitted sets (best of three, super tie-break third set) and atomically applies the slot swap. Idempotent: resubmitting a resolved challenge returns 409.
// @Tags desafios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Challenge ID"
// @Param request body ladder.SetScores true "Set scores"
// @Success 200 {object} ladder.Challenge
// @Failure 403 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /desafios/{id}/resultado [post]
func (h *Handler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.actingPlayer(w, r)
	if !ok {
		return
	}
	id, ok := challengeID(w, r)
	if !ok {
		return
	}

	var scores ladder.SetScores
	if err := json.NewDecoder(r.Body).Decode(&scores); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "malformed JSON body")
		return
	}

	c, err := h.svc.SubmitResult(r.Context(), playerID, id, &scores)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	h.invalidateRankingCaches()
	respond.WriteJSONObject(w, http.StatusOK, c)
}

// ListUpcomingChallenges lists all pending and accepted challenges.
// @Summary List upcoming challenges
// @Tags desafios
// @Produce json
// @Success 200 {array} ladder.Challenge
// @Router /desafios/proximos [get]
func (h *Handler) ListUpcomingChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.svc.ListUpcoming(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, challenges)
}

// ListMyUpcomingChallenges lists the acting player's recent and upcoming challenges.
// @Summary List my upcoming challenges
// @Tags desafios
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ladder.Challenge
// @Router /desafios/mis-proximos [get]
func (h *Handler) ListMyUpcomingChallenges(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.actingPlayer(w, r)
	if !ok {
		return
	}
	challenges, err := h.svc.ListMineUpcoming(r.Context(), playerID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, challenges)
}

// ListMyChallenges lists every challenge the acting player participates in.
// @Summary List my challenges
// @Tags desafios
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ladder.Challenge
// @Router /desafios/mis-desafios [get]
func (h *Handler) ListMyChallenges(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.actingPlayer(w, r)
	if !ok {
		return
	}
	challenges, err := h.svc.ListMine(r.Context(), playerID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, challenges)
}

// ListChallengesByPair lists a pair's full challenge history.
// @Summary List challenges by pair
// @Tags desafios
// @Produce json
// @Param id path int true "Pair ID"
// @Success 200 {array} ladder.Challenge
// @Router /desafios/pareja/{id} [get]
func (h *Handler) ListChallengesByPair(w http.ResponseWriter, r *http.Request) {
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

// GetChallenge returns a challenge, visible only to its participants.
// @Summary Get challenge
// @Tags desafios
// @Produce json
// @Security BearerAuth
// @Param id path int true "Challenge ID"
// @Success 200 {object} ladder.Challenge
// @Failure 403 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /desafios/{id} [get]
func (h *Handler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.actingPlayer(w, r)
	if !ok {
		return
	}
	id, ok := challengeID(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), playerID, id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, c)
}

// GetChallengePublic returns a challenge without the participant restriction.
// @Summary Get challenge (public)
// @Tags desafios
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} ladder.Challenge
// @Failure 404 {object} respond.ErrorResponse
// @Router /desafios/{id}/publico [get]
func (h *Handler) GetChallengePublic(w http.ResponseWriter, r *http.Request) {
	id, ok := challengeID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetPublic(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, c)
}
