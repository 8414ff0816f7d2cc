package model

import "time"

// Badge est une entrée du catalogue statique de badges
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BadgeType   string `json:"badgeType"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	PointsValue int    `json:"pointsValue"`
}

// BadgeAward matérialise l'obtention d'un badge par un utilisateur.
// Invariant: unique par couple (user_id, badge_id), un badge n'est jamais détenu deux fois.
type BadgeAward struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	BadgeID     string    `json:"badgeId"`
	ChallengeID *string   `json:"challengeId,omitempty"`
	EarnedAt    time.Time `json:"earnedAt"`
}
