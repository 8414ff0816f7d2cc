package model

import "time"

// LeaderboardType identifie un des trois classements reconstruits par le moteur
type LeaderboardType string

const (
	LeaderboardGlobalPoints      LeaderboardType = "global_points"
	LeaderboardMonthlyPoints     LeaderboardType = "monthly_points"
	LeaderboardChallengeSpecific LeaderboardType = "challenge_specific"
)

// Valid vérifie que le type de classement est connu
func (t LeaderboardType) Valid() bool {
	switch t {
	case LeaderboardGlobalPoints, LeaderboardMonthlyPoints, LeaderboardChallengeSpecific:
		return true
	}
	return false
}

// LeaderboardEntry est une ligne dérivée d'un classement. L'ensemble des lignes
// d'une partition (type, reference_id, période) est remplacé atomiquement à
// chaque reconstruction; RankPosition est une séquence dense 1..N sans trou.
type LeaderboardEntry struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	LeaderboardType LeaderboardType `json:"leaderboardType"`
	ReferenceID     *string         `json:"referenceId,omitempty"`
	Score           float64         `json:"score"`
	RankPosition    int             `json:"rankPosition"`
	PeriodStart     *time.Time      `json:"periodStart,omitempty"`
	PeriodEnd       *time.Time      `json:"periodEnd,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
