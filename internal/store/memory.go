package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
)

// Memory est une implémentation en mémoire de Store, avec les mêmes
// garanties d'atomicité que l'implémentation Postgres (insertion
// conditionnelle des badges, remplacement de partition d'un bloc).
// Sert aux tests du moteur et aux exécutions locales sans base.
type Memory struct {
	mu sync.Mutex

	records        []*model.PersonalRecord
	challenges     map[string]*model.Challenge
	participations map[string]*model.ChallengeParticipation // clé user|challenge
	points         map[string]*model.UserPoints
	badges         map[string]*model.Badge
	awards         map[string]*model.BadgeAward // clé user|badge
	leaderboards   []*model.LeaderboardEntry
	sessions       map[string]string // token -> user id
}

func NewMemory() *Memory {
	return &Memory{
		challenges:     make(map[string]*model.Challenge),
		participations: make(map[string]*model.ChallengeParticipation),
		points:         make(map[string]*model.UserPoints),
		badges:         make(map[string]*model.Badge),
		awards:         make(map[string]*model.BadgeAward),
		sessions:       make(map[string]string),
	}
}

func participationKey(userID, challengeID string) string {
	return userID + "|" + challengeID
}

func awardKey(userID, badgeID string) string {
	return userID + "|" + badgeID
}

func (s *Memory) InsertPersonalRecord(ctx context.Context, rec *model.PersonalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.records = append(s.records, &cp)
	return nil
}

func (s *Memory) GetBestPR(ctx context.Context, userID string, exercise model.ExerciseType) (*model.PersonalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var best *model.PersonalRecord
	for _, rec := range s.records {
		if rec.UserID != userID || rec.ExerciseType != exercise {
			continue
		}
		if best == nil || rec.Score() > best.Score() {
			best = rec
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (s *Memory) ListPersonalRecords(ctx context.Context, userID string, limit int) ([]*model.PersonalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []*model.PersonalRecord
	for _, rec := range s.records {
		if rec.UserID == userID {
			cp := *rec
			records = append(records, &cp)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].AchievedAt.After(records[j].AchievedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *Memory) ListPersonalRecordsByExercise(ctx context.Context, userID string, exercise model.ExerciseType) ([]*model.PersonalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []*model.PersonalRecord
	for _, rec := range s.records {
		if rec.UserID == userID && rec.ExerciseType == exercise {
			cp := *rec
			records = append(records, &cp)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].AchievedAt.After(records[j].AchievedAt)
	})
	return records, nil
}

func (s *Memory) InsertChallenge(ctx context.Context, c *model.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	s.challenges[c.ID] = &cp
	return nil
}

func (s *Memory) GetChallenge(ctx context.Context, id string) (*model.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.challenges[id]
	if !ok {
		return nil, fmt.Errorf("challenge %s: %w", id, ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (s *Memory) ListChallenges(ctx context.Context, filter ChallengeFilter) ([]*model.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var challenges []*model.Challenge
	for _, c := range s.challenges {
		if filter.ActiveOn != nil && !c.ActiveOn(*filter.ActiveOn) {
			continue
		}
		if filter.ChallengeType != nil && c.ChallengeType != *filter.ChallengeType {
			continue
		}
		if filter.GymID != nil && (c.GymID == nil || *c.GymID != *filter.GymID) {
			continue
		}
		if filter.IsGlobal != nil && c.IsGlobal != *filter.IsGlobal {
			continue
		}
		cp := *c
		challenges = append(challenges, &cp)
	}
	sort.SliceStable(challenges, func(i, j int) bool {
		return challenges[i].CreatedAt.After(challenges[j].CreatedAt)
	})
	return challenges, nil
}

func (s *Memory) InsertParticipation(ctx context.Context, p *model.ChallengeParticipation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := participationKey(p.UserID, p.ChallengeID)
	if _, exists := s.participations[key]; exists {
		return ErrAlreadyJoined
	}
	cp := *p
	s.participations[key] = &cp
	return nil
}

func (s *Memory) GetParticipation(ctx context.Context, userID, challengeID string) (*model.ChallengeParticipation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participations[participationKey(userID, challengeID)]
	if !ok {
		return nil, fmt.Errorf("participation %s/%s: %w", userID, challengeID, ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (s *Memory) UpdateParticipation(ctx context.Context, p *model.ChallengeParticipation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := participationKey(p.UserID, p.ChallengeID)
	if _, ok := s.participations[key]; !ok {
		return fmt.Errorf("participation %s/%s: %w", p.UserID, p.ChallengeID, ErrNotFound)
	}
	cp := *p
	s.participations[key] = &cp
	return nil
}

func (s *Memory) ListParticipations(ctx context.Context, userID string) ([]*model.ChallengeParticipation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var participations []*model.ChallengeParticipation
	for _, p := range s.participations {
		if p.UserID == userID {
			cp := *p
			participations = append(participations, &cp)
		}
	}
	sort.SliceStable(participations, func(i, j int) bool {
		return participations[i].JoinedAt.After(participations[j].JoinedAt)
	})
	return participations, nil
}

func (s *Memory) TopParticipants(ctx context.Context, challengeID string, limit int) ([]*model.ChallengeParticipation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var participations []*model.ChallengeParticipation
	for _, p := range s.participations {
		if p.ChallengeID == challengeID {
			cp := *p
			participations = append(participations, &cp)
		}
	}
	// Progression décroissante, user_id croissant en cas d'égalité
	sort.Slice(participations, func(i, j int) bool {
		if participations[i].CurrentProgress != participations[j].CurrentProgress {
			return participations[i].CurrentProgress > participations[j].CurrentProgress
		}
		return participations[i].UserID < participations[j].UserID
	})
	if limit > 0 && len(participations) > limit {
		participations = participations[:limit]
	}
	return participations, nil
}

func (s *Memory) GetOrCreateUserPoints(ctx context.Context, userID string) (*model.UserPoints, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	up, ok := s.points[userID]
	if !ok {
		up = model.NewUserPoints(userID)
		up.UpdatedAt = time.Now()
		s.points[userID] = up
	}
	cp := *up
	return &cp, nil
}

func (s *Memory) UpdateUserPoints(ctx context.Context, points *model.UserPoints) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *points
	cp.UpdatedAt = time.Now()
	s.points[points.UserID] = &cp
	return nil
}

func (s *Memory) TopUserPoints(ctx context.Context, order PointsOrder, limit int) ([]*model.UserPoints, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counter := func(up *model.UserPoints) int {
		if order == OrderByMonthlyPoints {
			return up.MonthlyPoints
		}
		return up.TotalPoints
	}

	var results []*model.UserPoints
	for _, up := range s.points {
		cp := *up
		results = append(results, &cp)
	}
	// Compteur décroissant, user_id croissant en cas d'égalité
	sort.Slice(results, func(i, j int) bool {
		if counter(results[i]) != counter(results[j]) {
			return counter(results[i]) > counter(results[j])
		}
		return results[i].UserID < results[j].UserID
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *Memory) ResetPeriodCounters(ctx context.Context, weekly, monthly bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, up := range s.points {
		if weekly {
			up.WeeklyPoints = 0
		}
		if monthly {
			up.MonthlyPoints = 0
		}
	}
	return nil
}

// SeedBadge alimente le catalogue statique (fixtures de test et runs locaux)
func (s *Memory) SeedBadge(b *model.Badge) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *b
	s.badges[b.ID] = &cp
}

// SeedSession enregistre un token de session (fixtures de test)
func (s *Memory) SeedSession(token, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = userID
}

func (s *Memory) GetBadge(ctx context.Context, id string) (*model.Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.badges[id]
	if !ok {
		return nil, fmt.Errorf("badge %s: %w", id, ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (s *Memory) FindBadgeByName(ctx context.Context, name string) (*model.Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.badges {
		if b.Name == name {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Memory) ListBadges(ctx context.Context) ([]*model.Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var badges []*model.Badge
	for _, b := range s.badges {
		cp := *b
		badges = append(badges, &cp)
	}
	sort.Slice(badges, func(i, j int) bool {
		if badges[i].BadgeType != badges[j].BadgeType {
			return badges[i].BadgeType < badges[j].BadgeType
		}
		return badges[i].Name < badges[j].Name
	})
	return badges, nil
}

func (s *Memory) InsertBadgeAward(ctx context.Context, award *model.BadgeAward) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := awardKey(award.UserID, award.BadgeID)
	if _, exists := s.awards[key]; exists {
		return ErrAlreadyAwarded
	}
	cp := *award
	s.awards[key] = &cp
	return nil
}

func (s *Memory) HasBadgeAward(ctx context.Context, userID, badgeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.awards[awardKey(userID, badgeID)]
	return exists, nil
}

func (s *Memory) ListBadgeAwards(ctx context.Context, userID string) ([]*model.BadgeAward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var awards []*model.BadgeAward
	for _, a := range s.awards {
		if a.UserID == userID {
			cp := *a
			awards = append(awards, &cp)
		}
	}
	sort.SliceStable(awards, func(i, j int) bool {
		return awards[i].EarnedAt.After(awards[j].EarnedAt)
	})
	return awards, nil
}

func (s *Memory) ReplacePartition(ctx context.Context, part Partition, entries []*model.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inPartition := func(e *model.LeaderboardEntry) bool {
		if e.LeaderboardType != part.Type {
			return false
		}
		if part.ReferenceID != nil {
			if e.ReferenceID == nil || *e.ReferenceID != *part.ReferenceID {
				return false
			}
		}
		if part.PeriodStart != nil && part.PeriodEnd != nil {
			if e.PeriodStart == nil || e.PeriodEnd == nil {
				return false
			}
			if e.PeriodStart.Before(*part.PeriodStart) || e.PeriodEnd.After(*part.PeriodEnd) {
				return false
			}
		}
		return true
	}

	kept := s.leaderboards[:0]
	for _, e := range s.leaderboards {
		if !inPartition(e) {
			kept = append(kept, e)
		}
	}
	s.leaderboards = kept

	for _, e := range entries {
		cp := *e
		s.leaderboards = append(s.leaderboards, &cp)
	}
	return nil
}

func (s *Memory) GetLeaderboard(ctx context.Context, typ model.LeaderboardType, referenceID *string, limit int) ([]*model.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []*model.LeaderboardEntry
	for _, e := range s.leaderboards {
		if e.LeaderboardType != typ {
			continue
		}
		if referenceID != nil {
			if e.ReferenceID == nil || *e.ReferenceID != *referenceID {
				continue
			}
		}
		cp := *e
		entries = append(entries, &cp)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RankPosition < entries[j].RankPosition
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *Memory) GetUserIDByToken(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.sessions[token]
	if !ok {
		return "", fmt.Errorf("token not found or expired: %w", ErrNotFound)
	}
	return userID, nil
}

var _ Store = (*Memory)(nil)
