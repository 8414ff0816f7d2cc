package handler

import (
	"net/http"

	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func (h *Handler) RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "GymEZ Gamification API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"records": []map[string]string{
				{"method": "POST", "path": "/records/check", "description": "Évaluer une performance sans l'enregistrer"},
				{"method": "POST", "path": "/records", "description": "Évaluer et enregistrer un record personnel"},
				{"method": "GET", "path": "/records/best/{exercise}", "description": "Meilleur record pour un exercice"},
				{"method": "GET", "path": "/records/recent", "description": "Derniers records (param: limit)"},
				{"method": "GET", "path": "/records/history/{exercise}", "description": "Historique des records pour un exercice"},
				{"method": "GET", "path": "/records/stats", "description": "Statistiques de records"},
				{"method": "GET", "path": "/exercises", "description": "Catalogue des exercices suivis"},
			},
			"challenges": []map[string]string{
				{"method": "GET", "path": "/challenges", "description": "Lister les challenges (params: active, type, gymId, global)"},
				{"method": "GET", "path": "/challenges/{id}", "description": "Récupérer un challenge par ID"},
				{"method": "POST", "path": "/challenges", "description": "Créer un challenge"},
				{"method": "POST", "path": "/challenges/seed", "description": "Provisionner les challenges standards"},
				{"method": "POST", "path": "/challenges/{id}/join", "description": "Rejoindre un challenge"},
				{"method": "PUT", "path": "/challenges/{id}/progress", "description": "Écraser la progression du participant"},
				{"method": "GET", "path": "/challenges/{id}/progress", "description": "Progression courante du participant"},
				{"method": "GET", "path": "/users/me/challenges", "description": "Participations de l'utilisateur"},
			},
			"rewards": []map[string]string{
				{"method": "GET", "path": "/users/me/points", "description": "Grand livre de points (total, niveau, compteurs)"},
				{"method": "POST", "path": "/users/me/points", "description": "Créditer des points"},
				{"method": "GET", "path": "/badges", "description": "Catalogue des badges"},
				{"method": "GET", "path": "/users/me/badges", "description": "Badges obtenus"},
				{"method": "POST", "path": "/badges/{badgeId}/award", "description": "Décerner un badge (idempotent)"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Lire un classement (params: type, challengeId, limit)"},
				{"method": "GET", "path": "/challenges/{challengeId}/leaderboard", "description": "Classement d'un challenge"},
				{"method": "POST", "path": "/leaderboard/rebuild", "description": "Reconstruire les classements"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST du moteur de gamification GymEZ - records, challenges, points et classements",
			"contact":     "support@gymez.app",
		},
	}

	utils.Success(w, routes)
}
