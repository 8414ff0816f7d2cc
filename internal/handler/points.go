package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tusharpathaknyu/GymEZ-sub003/internal/middleware"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
)

// GetUserPoints retourne le grand livre de points de l'utilisateur,
// créé au premier accès (niveau 1, 100 points avant le niveau suivant)
func (h *Handler) GetUserPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	points, err := h.rewards.UserPoints(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, points)
}

// pointsPayload porte un crédit de points à appliquer
type pointsPayload struct {
	Points int    `json:"points"`
	Reason string `json:"reason,omitempty"`
}

// AddPoints crédite des points à l'utilisateur. Un passage de niveau
// déclenche les badges de palier.
func (h *Handler) AddPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload pointsPayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	points, err := h.rewards.AddPoints(r.Context(), userID, payload.Points)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, points)
}

// GetBadgeCatalog liste le catalogue statique de badges
func (h *Handler) GetBadgeCatalog(w http.ResponseWriter, r *http.Request) {
	badges, err := h.rewards.BadgeCatalog(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, badges)
}

// GetUserBadges liste les badges obtenus par l'utilisateur
func (h *Handler) GetUserBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	awards, err := h.rewards.UserBadges(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, awards)
}

// AwardBadge décerne un badge à l'utilisateur. Un badge déjà détenu
// retourne 409 sans rien modifier.
func (h *Handler) AwardBadge(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	award, err := h.rewards.AwardBadge(r.Context(), userID, mux.Vars(r)["badgeId"], nil)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Created(w, award)
}
