package gamification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
)

// Tailles des classements reconstruits
const (
	GlobalLeaderboardSize    = 100
	MonthlyLeaderboardSize   = 100
	ChallengeLeaderboardSize = 50
)

// LeaderboardService reconstruit les trois classements par remplacement
// complet et déterministe de partition. Dans une partition les rangs forment
// toujours la permutation dense 1..N; les égalités de score sont départagées
// par user_id croissant.
type LeaderboardService struct {
	store store.Store
	now   func() time.Time
}

func NewLeaderboardService(st store.Store) *LeaderboardService {
	return &LeaderboardService{store: st, now: time.Now}
}

// MonthWindow retourne les bornes du mois calendaire contenant t (UTC)
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// RebuildAll reconstruit les trois classements et retourne le nombre total
// de lignes écrites.
func (s *LeaderboardService) RebuildAll(ctx context.Context) (int, error) {
	total := 0

	n, err := s.RebuildGlobal(ctx)
	if err != nil {
		return total, fmt.Errorf("rebuild global leaderboard: %w", err)
	}
	total += n
	utils.LogInfo("[COMPUTE] global_points leaderboard: %d rows", n)

	n, err = s.RebuildMonthly(ctx)
	if err != nil {
		return total, fmt.Errorf("rebuild monthly leaderboard: %w", err)
	}
	total += n
	utils.LogInfo("[COMPUTE] monthly_points leaderboard: %d rows", n)

	n, err = s.RebuildChallenges(ctx, nil)
	if err != nil {
		return total, fmt.Errorf("rebuild challenge leaderboards: %w", err)
	}
	total += n
	utils.LogInfo("[COMPUTE] challenge leaderboards: %d rows", n)

	return total, nil
}

// RebuildGlobal reconstruit le top 100 par points totaux
func (s *LeaderboardService) RebuildGlobal(ctx context.Context) (int, error) {
	top, err := s.store.TopUserPoints(ctx, store.OrderByTotalPoints, GlobalLeaderboardSize)
	if err != nil {
		return 0, fmt.Errorf("query top total points: %w", err)
	}

	entries := make([]*model.LeaderboardEntry, 0, len(top))
	for i, up := range top {
		entries = append(entries, &model.LeaderboardEntry{
			ID:              uuid.New().String(),
			UserID:          up.UserID,
			LeaderboardType: model.LeaderboardGlobalPoints,
			Score:           float64(up.TotalPoints),
			RankPosition:    i + 1,
		})
	}

	part := store.Partition{Type: model.LeaderboardGlobalPoints}
	if err := s.store.ReplacePartition(ctx, part, entries); err != nil {
		return 0, fmt.Errorf("replace global partition: %w", err)
	}
	return len(entries), nil
}

// RebuildMonthly reconstruit le top 100 par points mensuels, borné au mois
// calendaire courant; seules les lignes de cette fenêtre sont remplacées.
func (s *LeaderboardService) RebuildMonthly(ctx context.Context) (int, error) {
	top, err := s.store.TopUserPoints(ctx, store.OrderByMonthlyPoints, MonthlyLeaderboardSize)
	if err != nil {
		return 0, fmt.Errorf("query top monthly points: %w", err)
	}

	monthStart, monthEnd := MonthWindow(s.now())

	entries := make([]*model.LeaderboardEntry, 0, len(top))
	for i, up := range top {
		start, end := monthStart, monthEnd
		entries = append(entries, &model.LeaderboardEntry{
			ID:              uuid.New().String(),
			UserID:          up.UserID,
			LeaderboardType: model.LeaderboardMonthlyPoints,
			Score:           float64(up.MonthlyPoints),
			RankPosition:    i + 1,
			PeriodStart:     &start,
			PeriodEnd:       &end,
		})
	}

	part := store.Partition{
		Type:        model.LeaderboardMonthlyPoints,
		PeriodStart: &monthStart,
		PeriodEnd:   &monthEnd,
	}
	if err := s.store.ReplacePartition(ctx, part, entries); err != nil {
		return 0, fmt.Errorf("replace monthly partition: %w", err)
	}
	return len(entries), nil
}

// RebuildChallenges reconstruit le classement de chaque challenge actif
// (top 50 participants par progression). Avec un challengeID la
// reconstruction se limite à ce challenge.
func (s *LeaderboardService) RebuildChallenges(ctx context.Context, challengeID *string) (int, error) {
	var challenges []*model.Challenge

	if challengeID != nil {
		challenge, err := s.store.GetChallenge(ctx, *challengeID)
		if err != nil {
			return 0, err
		}
		challenges = []*model.Challenge{challenge}
	} else {
		today := s.now()
		var err error
		challenges, err = s.store.ListChallenges(ctx, store.ChallengeFilter{ActiveOn: &today})
		if err != nil {
			return 0, fmt.Errorf("list active challenges: %w", err)
		}
	}

	total := 0
	for _, challenge := range challenges {
		participants, err := s.store.TopParticipants(ctx, challenge.ID, ChallengeLeaderboardSize)
		if err != nil {
			return total, fmt.Errorf("query participants of %s: %w", challenge.ID, err)
		}

		entries := make([]*model.LeaderboardEntry, 0, len(participants))
		for i, p := range participants {
			refID := challenge.ID
			entries = append(entries, &model.LeaderboardEntry{
				ID:              uuid.New().String(),
				UserID:          p.UserID,
				LeaderboardType: model.LeaderboardChallengeSpecific,
				ReferenceID:     &refID,
				Score:           p.CurrentProgress,
				RankPosition:    i + 1,
			})
		}

		refID := challenge.ID
		part := store.Partition{
			Type:        model.LeaderboardChallengeSpecific,
			ReferenceID: &refID,
		}
		if err := s.store.ReplacePartition(ctx, part, entries); err != nil {
			return total, fmt.Errorf("replace partition of %s: %w", challenge.ID, err)
		}
		total += len(entries)
	}

	return total, nil
}

// Rebuild reconstruit un classement donné et retourne le nombre de lignes écrites
func (s *LeaderboardService) Rebuild(ctx context.Context, kind model.LeaderboardType, referenceID *string) (int, error) {
	switch kind {
	case model.LeaderboardGlobalPoints:
		return s.RebuildGlobal(ctx)
	case model.LeaderboardMonthlyPoints:
		return s.RebuildMonthly(ctx)
	case model.LeaderboardChallengeSpecific:
		return s.RebuildChallenges(ctx, referenceID)
	default:
		return 0, validationErr("unknown leaderboard type %q", kind)
	}
}

// Leaderboard lit un classement par rang croissant
func (s *LeaderboardService) Leaderboard(ctx context.Context, kind model.LeaderboardType, referenceID *string, limit int) ([]*model.LeaderboardEntry, error) {
	if !kind.Valid() {
		return nil, validationErr("unknown leaderboard type %q", kind)
	}
	if limit <= 0 || limit > GlobalLeaderboardSize {
		limit = 50
	}
	return s.store.GetLeaderboard(ctx, kind, referenceID, limit)
}
