package handler

import (
	"errors"
	"net/http"

	"github.com/tusharpathaknyu/GymEZ-sub003/internal/gamification"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
)

// Handler regroupe les services du moteur exposés par l'API
type Handler struct {
	records      *gamification.RecordService
	challenges   *gamification.ChallengeService
	progress     *gamification.ProgressTracker
	rewards      *gamification.RewardService
	leaderboards *gamification.LeaderboardService
}

func New(st store.Store) *Handler {
	rewards := gamification.NewRewardService(st)
	return &Handler{
		records:      gamification.NewRecordService(st),
		challenges:   gamification.NewChallengeService(st),
		progress:     gamification.NewProgressTracker(st, rewards),
		rewards:      rewards,
		leaderboards: gamification.NewLeaderboardService(st),
	}
}

// writeError traduit les erreurs du moteur en statuts HTTP
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gamification.ErrValidation):
		utils.ErrorSimple(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		utils.ErrorSimple(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrAlreadyJoined), errors.Is(err, store.ErrAlreadyAwarded):
		utils.ErrorSimple(w, http.StatusConflict, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, "internal error", err)
	}
}

// HealthCheck vérifie que l'API répond
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
