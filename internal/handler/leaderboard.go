package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
)

// GetLeaderboard lit un classement par rang croissant
// (params: type, challengeId, limit)
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	kind := model.LeaderboardType(query.Get("type"))
	if kind == "" {
		kind = model.LeaderboardGlobalPoints
	}

	var referenceID *string
	if raw := query.Get("challengeId"); raw != "" {
		referenceID = &raw
	}

	limit := utils.QueryInt(r, "limit", 50)

	entries, err := h.leaderboards.Leaderboard(r.Context(), kind, referenceID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, entries)
}

// GetChallengeLeaderboard lit le classement d'un challenge
func (h *Handler) GetChallengeLeaderboard(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["challengeId"]
	limit := utils.QueryInt(r, "limit", 50)

	entries, err := h.leaderboards.Leaderboard(r.Context(), model.LeaderboardChallengeSpecific, &challengeID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, entries)
}

// rebuildPayload cible une reconstruction de classement
type rebuildPayload struct {
	Type        model.LeaderboardType `json:"type,omitempty"`
	ChallengeID *string               `json:"challengeId,omitempty"`
}

// RebuildLeaderboards reconstruit les classements par remplacement complet
// de partition. Sans type, les trois classements sont reconstruits.
func (h *Handler) RebuildLeaderboards(w http.ResponseWriter, r *http.Request) {
	var payload rebuildPayload
	if r.ContentLength > 0 {
		if err := utils.DecodeJSON(r, &payload); err != nil {
			utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	var (
		rows int
		err  error
	)
	if payload.Type == "" {
		rows, err = h.leaderboards.RebuildAll(r.Context())
	} else {
		rows, err = h.leaderboards.Rebuild(r.Context(), payload.Type, payload.ChallengeID)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, map[string]interface{}{"rowsWritten": rows})
}
