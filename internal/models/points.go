package model

import "time"

// Constantes du système de niveaux
const (
	PointsPerLevel      = 1000
	InitialLevel        = 1
	InitialPointsToNext = 100
)

// UserPoints est le grand livre de points d'un utilisateur.
// Exactement une ligne par utilisateur, créée paresseusement au premier accès.
// Seul le Reward Dispatcher mute ces champs.
type UserPoints struct {
	UserID            string    `json:"userId"`
	TotalPoints       int       `json:"totalPoints"`
	Level             int       `json:"level"`
	PointsToNextLevel int       `json:"pointsToNextLevel"`
	WeeklyPoints      int       `json:"weeklyPoints"`
	MonthlyPoints     int       `json:"monthlyPoints"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// LevelForPoints calcule le niveau correspondant à un total de points
func LevelForPoints(total int) int {
	return total/PointsPerLevel + 1
}

// NewUserPoints crée un grand livre vierge (niveau 1, 100 points avant le niveau suivant)
func NewUserPoints(userID string) *UserPoints {
	return &UserPoints{
		UserID:            userID,
		TotalPoints:       0,
		Level:             InitialLevel,
		PointsToNextLevel: InitialPointsToNext,
	}
}
