package gamification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
)

// MilestoneRule associe un seuil de niveau au nom du badge à décerner.
// La liste est déclarative: ajouter un palier ne demande qu'une donnée de plus.
type MilestoneRule struct {
	Level     int
	BadgeName string
}

// DefaultMilestones retourne les paliers de niveau récompensés par un badge
func DefaultMilestones() []MilestoneRule {
	return []MilestoneRule{
		{Level: 5, BadgeName: "Level 5"},
		{Level: 10, BadgeName: "Level 10"},
		{Level: 25, BadgeName: "Level 25"},
		{Level: 50, BadgeName: "Level 50"},
	}
}

// RewardService est l'unique point de mutation du grand livre de points et
// des badges. Toute attribution de points passe par AddPoints, jamais par une
// écriture directe des champs.
type RewardService struct {
	store      store.Store
	milestones []MilestoneRule

	// un mutex par utilisateur: AddPoints est un read-modify-write et des
	// complétions concurrentes pour le même utilisateur perdraient des
	// points sans sérialisation
	locks sync.Map
}

func NewRewardService(st store.Store) *RewardService {
	return &RewardService{store: st, milestones: DefaultMilestones()}
}

// WithMilestones remplace la table des paliers (tests et configurations spéciales)
func (s *RewardService) WithMilestones(rules []MilestoneRule) *RewardService {
	s.milestones = rules
	return s
}

func (s *RewardService) userLock(userID string) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// AddPoints crédite delta points à l'utilisateur: total, compteurs hebdo et
// mensuel, recalcul du niveau et du reste avant le niveau suivant, en une
// seule mise à jour. Un passage de niveau déclenche l'évaluation des badges
// de palier.
func (s *RewardService) AddPoints(ctx context.Context, userID string, delta int) (*model.UserPoints, error) {
	if delta < 0 {
		return nil, validationErr("negative points delta %d", delta)
	}

	points, oldLevel, err := s.credit(ctx, userID, delta)
	if err != nil {
		return nil, err
	}

	// Les badges de palier sont évalués hors du verrou utilisateur: le bonus
	// de points d'un badge repasse par AddPoints.
	if points.Level > oldLevel {
		if err := s.awardMilestones(ctx, userID, points.Level); err != nil {
			return nil, err
		}
	}

	return points, nil
}

func (s *RewardService) credit(ctx context.Context, userID string, delta int) (*model.UserPoints, int, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	points, err := s.store.GetOrCreateUserPoints(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("load user points: %w", err)
	}

	oldLevel := points.Level
	points.TotalPoints += delta
	points.Level = model.LevelForPoints(points.TotalPoints)
	points.PointsToNextLevel = points.Level*model.PointsPerLevel - points.TotalPoints
	points.WeeklyPoints += delta
	points.MonthlyPoints += delta

	if err := s.store.UpdateUserPoints(ctx, points); err != nil {
		return nil, 0, fmt.Errorf("persist user points: %w", err)
	}

	return points, oldLevel, nil
}

// AwardBadge décerne un badge à l'utilisateur. L'unicité par couple
// (user, badge) est arbitrée par le store (compare-and-insert): une
// deuxième attribution retourne store.ErrAlreadyAwarded sans rien modifier.
// Un badge portant une valeur en points crédite ce bonus via AddPoints.
func (s *RewardService) AwardBadge(ctx context.Context, userID, badgeID string, challengeID *string) (*model.BadgeAward, error) {
	badge, err := s.store.GetBadge(ctx, badgeID)
	if err != nil {
		return nil, err
	}

	award := &model.BadgeAward{
		ID:          uuid.New().String(),
		UserID:      userID,
		BadgeID:     badgeID,
		ChallengeID: challengeID,
		EarnedAt:    time.Now(),
	}
	if err := s.store.InsertBadgeAward(ctx, award); err != nil {
		return nil, err
	}

	if badge.PointsValue > 0 {
		if _, err := s.AddPoints(ctx, userID, badge.PointsValue); err != nil {
			return nil, fmt.Errorf("credit badge bonus: %w", err)
		}
	}

	return award, nil
}

// OnChallengeCompleted consomme un fait de complétion: crédite les points de
// récompense puis décerne le badge du challenge s'il y en a un. Un badge déjà
// détenu n'est pas une erreur ici, la complétion doit pouvoir être rejouée.
func (s *RewardService) OnChallengeCompleted(ctx context.Context, challenge *model.Challenge, userID string) error {
	if challenge.RewardPoints > 0 {
		if _, err := s.AddPoints(ctx, userID, challenge.RewardPoints); err != nil {
			return fmt.Errorf("credit challenge reward: %w", err)
		}
	}

	if challenge.RewardBadgeID != nil {
		_, err := s.AwardBadge(ctx, userID, *challenge.RewardBadgeID, &challenge.ID)
		if err != nil && !errors.Is(err, store.ErrAlreadyAwarded) {
			return fmt.Errorf("award challenge badge: %w", err)
		}
	}

	return nil
}

func (s *RewardService) awardMilestones(ctx context.Context, userID string, newLevel int) error {
	for _, rule := range s.milestones {
		if newLevel < rule.Level {
			continue
		}

		badge, err := s.store.FindBadgeByName(ctx, rule.BadgeName)
		if err != nil {
			return fmt.Errorf("lookup milestone badge: %w", err)
		}
		if badge == nil {
			// entrée de catalogue non provisionnée, pas une erreur
			continue
		}

		if _, err := s.AwardBadge(ctx, userID, badge.ID, nil); err != nil && !errors.Is(err, store.ErrAlreadyAwarded) {
			return fmt.Errorf("award milestone badge: %w", err)
		}
	}
	return nil
}

// UserPoints retourne le grand livre de l'utilisateur, créé au premier accès
func (s *RewardService) UserPoints(ctx context.Context, userID string) (*model.UserPoints, error) {
	return s.store.GetOrCreateUserPoints(ctx, userID)
}

// UserBadges liste les badges obtenus, du plus récent au plus ancien
func (s *RewardService) UserBadges(ctx context.Context, userID string) ([]*model.BadgeAward, error) {
	return s.store.ListBadgeAwards(ctx, userID)
}

// BadgeCatalog liste le catalogue statique de badges
func (s *RewardService) BadgeCatalog(ctx context.Context) ([]*model.Badge, error) {
	return s.store.ListBadges(ctx)
}

// ResetPeriodCounters remet à zéro les compteurs hebdomadaires et/ou mensuels.
// Invoqué par le job planifié aux frontières de période, jamais par le moteur.
func (s *RewardService) ResetPeriodCounters(ctx context.Context, weekly, monthly bool) error {
	return s.store.ResetPeriodCounters(ctx, weekly, monthly)
}
