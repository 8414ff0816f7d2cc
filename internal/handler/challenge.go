package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tusharpathaknyu/GymEZ-sub003/internal/gamification"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/middleware"
	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
)

// CreateChallenge crée un nouveau challenge
func (h *Handler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input gamification.CreateChallengeInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	challenge, err := h.challenges.Create(r.Context(), userID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Created(w, challenge)
}

// GetChallenges liste les challenges avec filtres optionnels
// (params: active, type, gymId, global)
func (h *Handler) GetChallenges(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var filter store.ChallengeFilter

	if query.Get("active") == "true" {
		now := time.Now()
		filter.ActiveOn = &now
	}
	if raw := query.Get("type"); raw != "" {
		ct := model.ChallengeType(raw)
		filter.ChallengeType = &ct
	}
	if raw := query.Get("gymId"); raw != "" {
		filter.GymID = &raw
	}
	if raw := query.Get("global"); raw != "" {
		global := raw == "true"
		filter.IsGlobal = &global
	}

	challenges, err := h.challenges.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, challenges)
}

// GetChallengeById récupère un challenge par ID
func (h *Handler) GetChallengeById(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.challenges.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, challenge)
}

// JoinChallenge inscrit l'utilisateur au challenge avec une progression à zéro
func (h *Handler) JoinChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	participation, err := h.challenges.Join(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Created(w, participation)
}

// progressPayload porte la nouvelle valeur de progression (total courant, pas un incrément)
type progressPayload struct {
	Value float64 `json:"value"`
}

// UpdateChallengeProgress écrase la progression du participant et déclenche
// les récompenses à la première complétion
func (h *Handler) UpdateChallengeProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload progressPayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	participation, event, err := h.progress.UpdateProgress(r.Context(), userID, mux.Vars(r)["id"], payload.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"participation": participation,
		"completed":     event != nil,
	})
}

// GetChallengeProgress retourne la participation courante de l'utilisateur
func (h *Handler) GetChallengeProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	participation, err := h.progress.Progress(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, participation)
}

// GetUserChallenges liste les participations de l'utilisateur
func (h *Handler) GetUserChallenges(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	participations, err := h.challenges.UserChallenges(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, participations)
}

// SeedStandardChallenges provisionne le catalogue des challenges globaux standards
func (h *Handler) SeedStandardChallenges(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	challenges, err := h.challenges.SeedStandard(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Created(w, challenges)
}
