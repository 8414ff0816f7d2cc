package store

import (
	"context"
	"errors"
	"time"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
)

// Erreurs de la frontière de persistance. Les appelants les testent avec errors.Is.
var (
	// ErrNotFound: l'enregistrement demandé n'existe pas
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyAwarded: le badge est déjà détenu par l'utilisateur
	ErrAlreadyAwarded = errors.New("badge already earned")
	// ErrAlreadyJoined: une participation existe déjà pour ce couple (user, challenge)
	ErrAlreadyJoined = errors.New("challenge already joined")
)

// ChallengeFilter restreint une liste de challenges
type ChallengeFilter struct {
	ActiveOn      *time.Time
	ChallengeType *model.ChallengeType
	GymID         *string
	IsGlobal      *bool
}

// PointsOrder choisit le compteur servant au classement des utilisateurs
type PointsOrder string

const (
	OrderByTotalPoints   PointsOrder = "total_points"
	OrderByMonthlyPoints PointsOrder = "monthly_points"
)

// Partition identifie l'ensemble de lignes de classement remplacé d'un bloc
type Partition struct {
	Type        model.LeaderboardType
	ReferenceID *string
	PeriodStart *time.Time
	PeriodEnd   *time.Time
}

// Store est la frontière de persistance du moteur de gamification.
// Toutes les opérations bloquantes passent par ici; le moteur lui-même
// ne connaît ni SQL ni transport.
type Store interface {
	// Records personnels
	InsertPersonalRecord(ctx context.Context, rec *model.PersonalRecord) error
	GetBestPR(ctx context.Context, userID string, exercise model.ExerciseType) (*model.PersonalRecord, error)
	ListPersonalRecords(ctx context.Context, userID string, limit int) ([]*model.PersonalRecord, error)
	ListPersonalRecordsByExercise(ctx context.Context, userID string, exercise model.ExerciseType) ([]*model.PersonalRecord, error)

	// Challenges
	InsertChallenge(ctx context.Context, c *model.Challenge) error
	GetChallenge(ctx context.Context, id string) (*model.Challenge, error)
	ListChallenges(ctx context.Context, filter ChallengeFilter) ([]*model.Challenge, error)

	// Participations
	InsertParticipation(ctx context.Context, p *model.ChallengeParticipation) error
	GetParticipation(ctx context.Context, userID, challengeID string) (*model.ChallengeParticipation, error)
	UpdateParticipation(ctx context.Context, p *model.ChallengeParticipation) error
	ListParticipations(ctx context.Context, userID string) ([]*model.ChallengeParticipation, error)
	TopParticipants(ctx context.Context, challengeID string, limit int) ([]*model.ChallengeParticipation, error)

	// Grand livre de points
	GetOrCreateUserPoints(ctx context.Context, userID string) (*model.UserPoints, error)
	UpdateUserPoints(ctx context.Context, points *model.UserPoints) error
	TopUserPoints(ctx context.Context, order PointsOrder, limit int) ([]*model.UserPoints, error)
	ResetPeriodCounters(ctx context.Context, weekly, monthly bool) error

	// Badges
	GetBadge(ctx context.Context, id string) (*model.Badge, error)
	FindBadgeByName(ctx context.Context, name string) (*model.Badge, error)
	ListBadges(ctx context.Context) ([]*model.Badge, error)
	InsertBadgeAward(ctx context.Context, award *model.BadgeAward) error
	HasBadgeAward(ctx context.Context, userID, badgeID string) (bool, error)
	ListBadgeAwards(ctx context.Context, userID string) ([]*model.BadgeAward, error)

	// Classements
	ReplacePartition(ctx context.Context, part Partition, rows []*model.LeaderboardEntry) error
	GetLeaderboard(ctx context.Context, typ model.LeaderboardType, referenceID *string, limit int) ([]*model.LeaderboardEntry, error)

	// Sessions (middleware d'authentification)
	GetUserIDByToken(ctx context.Context, token string) (string, error)
}
