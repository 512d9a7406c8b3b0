package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lidersalinas/ranking-padel-api/internal/api/respond"
	"github.com/lidersalinas/ranking-padel-api/internal/push"
)

type pushTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

// RegisterPushToken registers a device token for the acting player.
// @Summary Register push token
// @Tags push
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body pushTokenRequest true "Device token"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /push/token [post]
func (h *Handler) RegisterPushToken(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.actingPlayer(w, r)
	if !ok {
		return
	}

	var req pushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "token is required")
		return
	}

	err := h.push.RegisterToken(r.Context(), push.Token{
		PlayerID: playerID,
		Token:    req.Token,
		Platform: req.Platform,
	})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{"status": "registered"})
}

// UnregisterPushToken deactivates a device token.
// @Summary Unregister push token
// @Tags push
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body pushTokenRequest true "Device token"
// @Success 200 {object} map[string]interface{}
// @Router /push/token [delete]
func (h *Handler) UnregisterPushToken(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.actingPlayer(w, r); !ok {
		return
	}

	var req pushTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "token is required")
		return
	}

	if err := h.push.DeactivateToken(r.Context(), req.Token); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{"status": "unregistered"})
}

type testPushRequest struct {
	PlayerID int    `json:"jugador_id"`
	Title    string `json:"titulo"`
	Body     string `json:"mensaje"`
}

// SendTestPushToMe enqueues a test push to the acting player's devices.
// @Summary Send test push to self
// @Tags push
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body testPushRequest false "Optional title and body"
// @Success 202 {object} map[string]interface{}
// @Router /push/send-to-me [post]
func (h *Handler) SendTestPushToMe(w http.ResponseWriter, r *http.Request) {
	playerID, ok := h.actingPlayer(w, r)
	if !ok {
		return
	}

	req := testPushRequest{Title: "Ranking Pádel", Body: "Notificación de prueba"}
	_ = json.NewDecoder(r.Body).Decode(&req)

	err := h.push.Enqueue(r.Context(), []int{playerID}, req.Title, req.Body, map[string]string{"type": "test"})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusAccepted, map[string]interface{}{"status": "queued"})
}

// SendTestPushToPlayer enqueues a test push to an arbitrary player.
// Guarded by the admin secret header, not a player session.
// @Summary Send test push to a player
// @Tags push
// @Accept json
// @Produce json
// @Param X-Admin-Secret header string true "Admin API secret"
// @Param request body testPushRequest true "Target player and message"
// @Success 202 {object} map[string]interface{}
// @Failure 403 {object} respond.ErrorResponse
// @Router /push/send-to-jugador [post]
func (h *Handler) SendTestPushToPlayer(w http.ResponseWriter, r *http.Request) {
	if h.cfg.AdminAPISecret == "" || r.Header.Get("X-Admin-Secret") != h.cfg.AdminAPISecret {
		respond.WriteError(w, http.StatusForbidden, "FORBIDDEN", "invalid admin secret")
		return
	}

	var req testPushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "jugador_id is required")
		return
	}
	if req.Title == "" {
		req.Title = "Ranking Pádel"
	}

	err := h.push.Enqueue(r.Context(), []int{req.PlayerID}, req.Title, req.Body, map[string]string{"type": "test"})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusAccepted, map[string]interface{}{"status": "queued"})
}
