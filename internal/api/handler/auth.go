package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lidersalinas/ranking-padel-api/internal/api/respond"
	"github.com/lidersalinas/ranking-padel-api/internal/auth"
	"github.com/lidersalinas/ranking-padel-api/internal/ladder"
)

type loginLinkRequest struct {
	Email string `json:"email"`
}

// RequestLoginLink issues a magic link for the given email.
// @Summary Request magic link
// @Description Issues a single-use login link for the registered email. The response is identical whether or not the email exists, to avoid account enumeration. Outside production the link is returned in the response for development.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginLinkRequest true "Email"
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /auth/login-link [post]
func (h *Handler) RequestLoginLink(w http.ResponseWriter, r *http.Request) {
	var req loginLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "malformed JSON body")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_EMAIL", "email is required")
		return
	}

	link, err := h.auth.RequestLink(r.Context(), email)
	if err != nil && !errors.Is(err, ladder.ErrPlayerNotFound) {
		h.logger.Error("magic link issue failed", "error", err)
	}

	resp := map[string]interface{}{
		"status": "sent",
	}
	// Dev convenience only; production delivers the link out of band.
	if !h.cfg.IsProduction() && link != "" {
		resp["link"] = link
	}
	respond.WriteJSONObject(w, http.StatusAccepted, resp)
}

type redeemRequest struct {
	Token string `json:"token"`
}

// RedeemLoginLink exchanges a magic link token for a session JWT.
// @Summary Redeem magic link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body redeemRequest true "Magic link token"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} respond.ErrorResponse
// @Router /auth/sesion [post]
func (h *Handler) RedeemLoginLink(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "malformed JSON body")
		return
	}

	session, player, err := h.auth.Redeem(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidLink) || errors.Is(err, ladder.ErrPlayerNotFound) {
			respond.WriteError(w, http.StatusUnauthorized, "INVALID_LINK", "invalid or expired magic link")
			return
		}
		respond.WriteDomainError(w, err)
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"access_token": session,
		"token_type":   "bearer",
		"jugador":      player,
	})
}

// Me returns the authenticated player and their active pair.
// @Summary Current player
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} respond.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.actingPlayer(w, r)
	if !ok {
		return
	}

	player, err := h.store.PlayerByID(r.Context(), playerID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}

	me := map[string]interface{}{
		"jugador": player,
		"pareja":  nil,
	}
	if pair, err := h.store.ActivePairByPlayer(r.Context(), playerID); err == nil {
		me["pareja"] = pair
	}
	respond.WriteJSONObject(w, http.StatusOK, me)
}
