package gamification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
)

// DefaultRewardPoints est la récompense appliquée quand la création n'en précise pas
const DefaultRewardPoints = 100

// CreateChallengeInput porte les champs de création d'un challenge
type CreateChallengeInput struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	ChallengeType model.ChallengeType `json:"challengeType"`
	ExerciseType  *model.ExerciseType `json:"exerciseType,omitempty"`
	TargetValue   *float64            `json:"targetValue,omitempty"`
	TargetUnit    string              `json:"targetUnit,omitempty"`
	DurationDays  int                 `json:"durationDays"`
	StartDate     *time.Time          `json:"startDate,omitempty"`
	EndDate       *time.Time          `json:"endDate,omitempty"`
	IsGlobal      bool                `json:"isGlobal"`
	GymID         *string             `json:"gymId,omitempty"`
	RewardPoints  int                 `json:"rewardPoints"`
	RewardBadgeID *string             `json:"rewardBadgeId,omitempty"`
	Tags          []string            `json:"tags,omitempty"`
}

// ChallengeService gère le cycle de vie des challenges et des participations
type ChallengeService struct {
	store store.Store
	now   func() time.Time
}

func NewChallengeService(st store.Store) *ChallengeService {
	return &ChallengeService{store: st, now: time.Now}
}

// Create valide et insère un nouveau challenge. Un challenge sans récompense
// précisée vaut 100 points; les dates absentes sont dérivées de la durée.
func (s *ChallengeService) Create(ctx context.Context, creatorID string, input CreateChallengeInput) (*model.Challenge, error) {
	if input.Name == "" {
		return nil, validationErr("challenge name is required")
	}
	if !input.ChallengeType.Valid() {
		return nil, validationErr("unknown challenge type %q", input.ChallengeType)
	}
	if input.ExerciseType != nil && !input.ExerciseType.Valid() {
		return nil, validationErr("unknown exercise type %q", *input.ExerciseType)
	}
	if input.DurationDays <= 0 {
		return nil, validationErr("duration must be positive, got %d days", input.DurationDays)
	}

	rewardPoints := input.RewardPoints
	if rewardPoints == 0 {
		rewardPoints = DefaultRewardPoints
	}

	start := s.now()
	if input.StartDate != nil {
		start = *input.StartDate
	}
	end := start.AddDate(0, 0, input.DurationDays)
	if input.EndDate != nil {
		end = *input.EndDate
	}
	if end.Before(start) {
		return nil, validationErr("end date precedes start date")
	}

	challenge := &model.Challenge{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Description:   input.Description,
		ChallengeType: input.ChallengeType,
		ExerciseType:  input.ExerciseType,
		TargetValue:   input.TargetValue,
		TargetUnit:    input.TargetUnit,
		DurationDays:  input.DurationDays,
		StartDate:     start,
		EndDate:       end,
		IsGlobal:      input.IsGlobal,
		GymID:         input.GymID,
		RewardPoints:  rewardPoints,
		RewardBadgeID: input.RewardBadgeID,
		Tags:          input.Tags,
		CreatorID:     creatorID,
		CreatedAt:     s.now(),
	}
	if err := s.store.InsertChallenge(ctx, challenge); err != nil {
		return nil, fmt.Errorf("persist challenge: %w", err)
	}

	return challenge, nil
}

// Get retourne un challenge par identifiant
func (s *ChallengeService) Get(ctx context.Context, id string) (*model.Challenge, error) {
	return s.store.GetChallenge(ctx, id)
}

// List retourne les challenges filtrés
func (s *ChallengeService) List(ctx context.Context, filter store.ChallengeFilter) ([]*model.Challenge, error) {
	return s.store.ListChallenges(ctx, filter)
}

// Join crée la participation (user, challenge) avec une progression à zéro.
// Rejoindre deux fois retourne store.ErrAlreadyJoined.
func (s *ChallengeService) Join(ctx context.Context, userID, challengeID string) (*model.ChallengeParticipation, error) {
	if _, err := s.store.GetChallenge(ctx, challengeID); err != nil {
		return nil, err
	}

	participation := &model.ChallengeParticipation{
		ID:          uuid.New().String(),
		UserID:      userID,
		ChallengeID: challengeID,
		JoinedAt:    s.now(),
	}
	if err := s.store.InsertParticipation(ctx, participation); err != nil {
		return nil, err
	}

	return participation, nil
}

// UserChallenges liste les participations d'un utilisateur
func (s *ChallengeService) UserChallenges(ctx context.Context, userID string) ([]*model.ChallengeParticipation, error) {
	return s.store.ListParticipations(ctx, userID)
}

// SeedStandard provisionne le catalogue de challenges globaux standards.
// Les doublons d'exécution créent de nouveaux challenges, l'opération est
// réservée à l'initialisation.
func (s *ChallengeService) SeedStandard(ctx context.Context, creatorID string) ([]*model.Challenge, error) {
	bench := model.ExerciseBenchPress
	squat := model.ExerciseSquat
	deadlift := model.ExerciseDeadlift
	pushup := model.ExercisePushUp
	pullup := model.ExercisePullUp

	target := func(v float64) *float64 { return &v }

	standard := []CreateChallengeInput{
		{
			Name:          "Bench Press Century",
			Description:   "Bench press 100kg (220lbs) for the first time",
			ChallengeType: model.ChallengePRBased,
			ExerciseType:  &bench,
			TargetValue:   target(100),
			TargetUnit:    "kg",
			DurationDays:  90,
			IsGlobal:      true,
			RewardPoints:  200,
		},
		{
			Name:          "Squat Double Bodyweight",
			Description:   "Squat 2x your bodyweight",
			ChallengeType: model.ChallengePRBased,
			ExerciseType:  &squat,
			TargetValue:   target(2),
			TargetUnit:    "x bodyweight",
			DurationDays:  120,
			IsGlobal:      true,
			RewardPoints:  300,
		},
		{
			Name:          "Deadlift Triple Digits",
			Description:   "Deadlift over 100kg",
			ChallengeType: model.ChallengePRBased,
			ExerciseType:  &deadlift,
			TargetValue:   target(100),
			TargetUnit:    "kg",
			DurationDays:  90,
			IsGlobal:      true,
			RewardPoints:  200,
		},
		{
			Name:          "30-Day Workout Streak",
			Description:   "Complete 30 consecutive days of workouts",
			ChallengeType: model.ChallengeConsistency,
			TargetValue:   target(30),
			TargetUnit:    "days",
			DurationDays:  30,
			IsGlobal:      true,
			RewardPoints:  150,
		},
		{
			Name:          "Gym Rat",
			Description:   "Work out 5 times per week for 4 weeks",
			ChallengeType: model.ChallengeConsistency,
			TargetValue:   target(20),
			TargetUnit:    "workouts",
			DurationDays:  28,
			IsGlobal:      true,
			RewardPoints:  180,
		},
		{
			Name:          "Push-up Master",
			Description:   "Complete 1000 push-ups in 30 days",
			ChallengeType: model.ChallengeTotalVolume,
			ExerciseType:  &pushup,
			TargetValue:   target(1000),
			TargetUnit:    "reps",
			DurationDays:  30,
			IsGlobal:      true,
			RewardPoints:  120,
		},
		{
			Name:          "Pull-up Pro",
			Description:   "Complete 300 pull-ups in 30 days",
			ChallengeType: model.ChallengeTotalVolume,
			ExerciseType:  &pullup,
			TargetValue:   target(300),
			TargetUnit:    "reps",
			DurationDays:  30,
			IsGlobal:      true,
			RewardPoints:  150,
		},
		{
			Name:          "Iron Endurance",
			Description:   "Complete 20 hours of workouts in 30 days",
			ChallengeType: model.ChallengeDuration,
			TargetValue:   target(1200),
			TargetUnit:    "minutes",
			DurationDays:  30,
			IsGlobal:      true,
			RewardPoints:  200,
		},
	}

	var created []*model.Challenge
	for _, input := range standard {
		challenge, err := s.Create(ctx, creatorID, input)
		if err != nil {
			return created, fmt.Errorf("seed challenge %q: %w", input.Name, err)
		}
		created = append(created, challenge)
	}

	return created, nil
}
