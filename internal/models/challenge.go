package model

import "time"

// ChallengeType catégorise la mécanique de progression d'un challenge
type ChallengeType string

const (
	ChallengePRBased          ChallengeType = "pr_based"
	ChallengeConsistency      ChallengeType = "consistency"
	ChallengeTotalVolume      ChallengeType = "total_volume"
	ChallengeSpecificExercise ChallengeType = "specific_exercise"
	ChallengeDuration         ChallengeType = "duration"
)

// Valid vérifie que le type de challenge est connu
func (t ChallengeType) Valid() bool {
	switch t {
	case ChallengePRBased, ChallengeConsistency, ChallengeTotalVolume,
		ChallengeSpecificExercise, ChallengeDuration:
		return true
	}
	return false
}

// Challenge est immuable après création pour le moteur de gamification
type Challenge struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	ChallengeType ChallengeType `json:"challengeType"`
	ExerciseType  *ExerciseType `json:"exerciseType,omitempty"`
	TargetValue   *float64      `json:"targetValue,omitempty"`
	TargetUnit    string        `json:"targetUnit,omitempty"`
	DurationDays  int           `json:"durationDays"`
	StartDate     time.Time     `json:"startDate"`
	EndDate       time.Time     `json:"endDate"`
	IsGlobal      bool          `json:"isGlobal"`
	GymID         *string       `json:"gymId,omitempty"`
	RewardPoints  int           `json:"rewardPoints"`
	RewardBadgeID *string       `json:"rewardBadgeId,omitempty"`
	Tags          []string      `json:"tags,omitempty"`
	CreatorID     string        `json:"creatorId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// ActiveOn indique si le challenge est en cours à la date donnée
func (c *Challenge) ActiveOn(day time.Time) bool {
	return !c.StartDate.After(day) && !c.EndDate.Before(day)
}

// ChallengeParticipation tient la progression d'un utilisateur sur un challenge.
// Une seule ligne par couple (user, challenge); IsCompleted est un verrou à sens unique.
type ChallengeParticipation struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	ChallengeID     string     `json:"challengeId"`
	CurrentProgress float64    `json:"currentProgress"`
	IsCompleted     bool       `json:"isCompleted"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	JoinedAt        time.Time  `json:"joinedAt"`
}
