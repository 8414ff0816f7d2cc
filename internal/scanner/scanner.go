package scanner

import (
	"database/sql"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
	"github.com/lib/pq"
)

// RowScanner est l'interface minimale commune à pgx.Row et pgx.Rows
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanPersonalRecord scanne une ligne SQL vers un PersonalRecord
func ScanPersonalRecord(scanner RowScanner) (*model.PersonalRecord, error) {
	var rec model.PersonalRecord

	err := scanner.Scan(
		&rec.ID, &rec.UserID, &rec.ExerciseType, &rec.Weight, &rec.Reps,
		&rec.AchievedAt, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// ScanChallenge scanne une ligne SQL vers un Challenge (tags text[] via pq.Array)
func ScanChallenge(scanner RowScanner) (*model.Challenge, error) {
	var c model.Challenge
	var exerciseType, targetUnit, gymID, rewardBadgeID, creatorID sql.NullString
	var targetValue sql.NullFloat64

	err := scanner.Scan(
		&c.ID, &c.Name, &c.Description, &c.ChallengeType, &exerciseType,
		&targetValue, &targetUnit, &c.DurationDays, &c.StartDate, &c.EndDate,
		&c.IsGlobal, &gymID, &c.RewardPoints, &rewardBadgeID,
		pq.Array(&c.Tags), &creatorID, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Conversions
	if exerciseType.Valid {
		et := model.ExerciseType(exerciseType.String)
		c.ExerciseType = &et
	}
	c.TargetValue = utils.NullFloat64ToPointer(targetValue)
	c.TargetUnit = utils.NullStringToString(targetUnit)
	c.GymID = utils.NullStringToPointer(gymID)
	c.RewardBadgeID = utils.NullStringToPointer(rewardBadgeID)
	c.CreatorID = utils.NullStringToString(creatorID)

	return &c, nil
}

// ScanParticipation scanne une ligne SQL vers une ChallengeParticipation
func ScanParticipation(scanner RowScanner) (*model.ChallengeParticipation, error) {
	var p model.ChallengeParticipation
	var completedAt sql.NullTime

	err := scanner.Scan(
		&p.ID, &p.UserID, &p.ChallengeID, &p.CurrentProgress,
		&p.IsCompleted, &completedAt, &p.JoinedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CompletedAt = utils.NullTimeToPointer(completedAt)

	return &p, nil
}

// ScanUserPoints scanne une ligne SQL vers un UserPoints
func ScanUserPoints(scanner RowScanner) (*model.UserPoints, error) {
	var up model.UserPoints

	err := scanner.Scan(
		&up.UserID, &up.TotalPoints, &up.Level, &up.PointsToNextLevel,
		&up.WeeklyPoints, &up.MonthlyPoints, &up.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &up, nil
}

// ScanBadge scanne une ligne SQL vers un Badge
func ScanBadge(scanner RowScanner) (*model.Badge, error) {
	var b model.Badge
	var description, icon sql.NullString

	err := scanner.Scan(
		&b.ID, &b.Name, &b.BadgeType, &description, &icon, &b.PointsValue,
	)
	if err != nil {
		return nil, err
	}

	b.Description = utils.NullStringToString(description)
	b.Icon = utils.NullStringToString(icon)

	return &b, nil
}

// ScanBadgeAward scanne une ligne SQL vers un BadgeAward
func ScanBadgeAward(scanner RowScanner) (*model.BadgeAward, error) {
	var a model.BadgeAward
	var challengeID sql.NullString

	err := scanner.Scan(
		&a.ID, &a.UserID, &a.BadgeID, &challengeID, &a.EarnedAt,
	)
	if err != nil {
		return nil, err
	}

	a.ChallengeID = utils.NullStringToPointer(challengeID)

	return &a, nil
}

// ScanLeaderboardEntry scanne une ligne SQL vers une LeaderboardEntry
func ScanLeaderboardEntry(scanner RowScanner) (*model.LeaderboardEntry, error) {
	var e model.LeaderboardEntry
	var referenceID sql.NullString
	var periodStart, periodEnd sql.NullTime

	err := scanner.Scan(
		&e.ID, &e.UserID, &e.LeaderboardType, &referenceID, &e.Score,
		&e.RankPosition, &periodStart, &periodEnd, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.ReferenceID = utils.NullStringToPointer(referenceID)
	e.PeriodStart = utils.NullTimeToPointer(periodStart)
	e.PeriodEnd = utils.NullTimeToPointer(periodEnd)

	return &e, nil
}
