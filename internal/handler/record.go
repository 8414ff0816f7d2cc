package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tusharpathaknyu/GymEZ-sub003/internal/middleware"
	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
)

// liftPayload porte une performance candidate soumise par le client
type liftPayload struct {
	ExerciseType model.ExerciseType `json:"exerciseType"`
	Weight       float64            `json:"weight"`
	Reps         int                `json:"reps"`
}

// CheckPR évalue une performance sans rien enregistrer
func (h *Handler) CheckPR(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload liftPayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	isPR, err := h.records.CheckPR(r.Context(), userID, payload.ExerciseType, payload.Weight, payload.Reps)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"isPR":  isPR,
		"score": model.ExerciseScore(payload.ExerciseType, payload.Weight, payload.Reps),
	})
}

// CreatePR évalue une performance et l'enregistre si elle bat le record courant
func (h *Handler) CreatePR(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload liftPayload
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, isNew, err := h.records.RecordPR(r.Context(), userID, payload.ExerciseType, payload.Weight, payload.Reps)
	if err != nil {
		writeError(w, err)
		return
	}

	if !isNew {
		utils.Success(w, map[string]interface{}{"isPR": false})
		return
	}

	utils.Created(w, map[string]interface{}{
		"isPR":   true,
		"record": rec,
	})
}

// GetBestPR retourne le meilleur record de l'utilisateur pour un exercice
func (h *Handler) GetBestPR(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	exercise := model.ExerciseType(mux.Vars(r)["exercise"])
	best, err := h.records.BestPR(r.Context(), userID, exercise)
	if err != nil {
		writeError(w, err)
		return
	}
	if best == nil {
		utils.ErrorSimple(w, http.StatusNotFound, "no record for this exercise")
		return
	}

	utils.Success(w, best)
}

// GetRecentPRs liste les derniers records de l'utilisateur (param: limit)
func (h *Handler) GetRecentPRs(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := utils.QueryInt(r, "limit", 10)
	records, err := h.records.RecentRecords(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, records)
}

// GetPRHistory liste tous les records de l'utilisateur pour un exercice
func (h *Handler) GetPRHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	exercise := model.ExerciseType(mux.Vars(r)["exercise"])
	records, err := h.records.History(r.Context(), userID, exercise)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, records)
}

// GetPRStats agrège les statistiques de records de l'utilisateur
func (h *Handler) GetPRStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r)
	if !ok {
		utils.ErrorSimple(w, http.StatusUnauthorized, "authentication required")
		return
	}

	stats, err := h.records.Stats(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.Success(w, stats)
}

// GetExerciseCatalog liste les exercices suivis par le moteur
func (h *Handler) GetExerciseCatalog(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, model.ExerciseCatalog())
}
