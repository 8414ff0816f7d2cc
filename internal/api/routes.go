package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"

	"github.com/tusharpathaknyu/GymEZ-sub003/internal/handler"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/middleware"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
)

func SetupRouter(h *handler.Handler, st store.Store) http.Handler {
	r := mux.NewRouter()

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.Auth(st))
	authenticatedRoutes.Use(middleware.Logger)

	// Root - API documentation
	r.HandleFunc("/", h.RootHandler).Methods(http.MethodGet)

	// Personal records
	authenticatedRoutes.HandleFunc("/records/check", h.CheckPR).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/records", h.CreatePR).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/records/best/{exercise}", h.GetBestPR).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/records/recent", h.GetRecentPRs).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/records/history/{exercise}", h.GetPRHistory).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/records/stats", h.GetPRStats).Methods(http.MethodGet)
	r.HandleFunc("/exercises", h.GetExerciseCatalog).Methods(http.MethodGet)

	// Challenges
	r.HandleFunc("/challenges", h.GetChallenges).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/challenges", h.CreateChallenge).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/challenges/seed", h.SeedStandardChallenges).Methods(http.MethodPost)
	r.HandleFunc("/challenges/{id}", h.GetChallengeById).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/challenges/{id}/join", h.JoinChallenge).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/challenges/{id}/progress", h.UpdateChallengeProgress).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/challenges/{id}/progress", h.GetChallengeProgress).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/me/challenges", h.GetUserChallenges).Methods(http.MethodGet)

	// Points et badges
	authenticatedRoutes.HandleFunc("/users/me/points", h.GetUserPoints).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/me/points", h.AddPoints).Methods(http.MethodPost)
	r.HandleFunc("/badges", h.GetBadgeCatalog).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/me/badges", h.GetUserBadges).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/badges/{badgeId}/award", h.AwardBadge).Methods(http.MethodPost)

	// Leaderboard
	r.HandleFunc("/leaderboard", h.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/challenges/{challengeId}/leaderboard", h.GetChallengeLeaderboard).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/leaderboard/rebuild", h.RebuildLeaderboards).Methods(http.MethodPost)

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
