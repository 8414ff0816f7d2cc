package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/scanner"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/utils"
)

// Postgres implémente Store au-dessus d'un pool pgx
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const personalRecordColumns = `id, user_id, exercise_type, weight, reps, achieved_at, created_at`

func (s *Postgres) InsertPersonalRecord(ctx context.Context, rec *model.PersonalRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO personal_records (id, user_id, exercise_type, weight, reps, achieved_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, rec.ID, rec.UserID, rec.ExerciseType, rec.Weight, rec.Reps, rec.AchievedAt)
	if err != nil {
		return fmt.Errorf("insert personal record: %w", err)
	}
	return nil
}

// GetBestPR retourne le meilleur record de l'utilisateur pour un exercice,
// ou nil sans erreur s'il n'en a aucun. Le "meilleur" est dérivé du score
// comparable, pas du poids brut.
func (s *Postgres) GetBestPR(ctx context.Context, userID string, exercise model.ExerciseType) (*model.PersonalRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+personalRecordColumns+`
		FROM personal_records
		WHERE user_id = $1 AND exercise_type = $2
	`, userID, exercise)
	if err != nil {
		return nil, fmt.Errorf("query best pr: %w", err)
	}
	defer rows.Close()

	var best *model.PersonalRecord
	for rows.Next() {
		rec, err := scanner.ScanPersonalRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan personal record: %w", err)
		}
		if best == nil || rec.Score() > best.Score() {
			best = rec
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate personal records: %w", err)
	}
	return best, nil
}

// ListPersonalRecords liste les records d'un utilisateur, du plus récent au
// plus ancien. limit <= 0 retourne tout l'historique.
func (s *Postgres) ListPersonalRecords(ctx context.Context, userID string, limit int) ([]*model.PersonalRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+personalRecordColumns+`
		FROM personal_records
		WHERE user_id = $1
		ORDER BY achieved_at DESC
		LIMIT NULLIF($2, 0)
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query personal records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func (s *Postgres) ListPersonalRecordsByExercise(ctx context.Context, userID string, exercise model.ExerciseType) ([]*model.PersonalRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+personalRecordColumns+`
		FROM personal_records
		WHERE user_id = $1 AND exercise_type = $2
		ORDER BY achieved_at DESC
	`, userID, exercise)
	if err != nil {
		return nil, fmt.Errorf("query pr history: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]*model.PersonalRecord, error) {
	var records []*model.PersonalRecord
	for rows.Next() {
		rec, err := scanner.ScanPersonalRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan personal record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

const challengeColumns = `id, name, description, challenge_type, exercise_type,
		target_value, target_unit, duration_days, start_date, end_date,
		is_global, gym_id, reward_points, reward_badge_id, tags, creator_id, created_at`

func (s *Postgres) InsertChallenge(ctx context.Context, c *model.Challenge) error {
	var exerciseType *string
	if c.ExerciseType != nil {
		et := string(*c.ExerciseType)
		exerciseType = &et
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO challenges (id, name, description, challenge_type, exercise_type,
			target_value, target_unit, duration_days, start_date, end_date,
			is_global, gym_id, reward_points, reward_badge_id, tags, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
	`, c.ID, c.Name, c.Description, c.ChallengeType, exerciseType,
		c.TargetValue, c.TargetUnit, c.DurationDays, c.StartDate, c.EndDate,
		c.IsGlobal, c.GymID, c.RewardPoints, c.RewardBadgeID, pq.Array(c.Tags), c.CreatorID)
	if err != nil {
		return fmt.Errorf("insert challenge: %w", err)
	}
	return nil
}

func (s *Postgres) GetChallenge(ctx context.Context, id string) (*model.Challenge, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+challengeColumns+`
		FROM challenges
		WHERE id = $1
	`, id)

	c, err := scanner.ScanChallenge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("challenge %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get challenge: %w", err)
	}
	return c, nil
}

func (s *Postgres) ListChallenges(ctx context.Context, filter ChallengeFilter) ([]*model.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE 1=1`
	var args []interface{}

	if filter.ActiveOn != nil {
		args = append(args, *filter.ActiveOn)
		query += fmt.Sprintf(" AND start_date <= $%d AND end_date >= $%d", len(args), len(args))
	}
	if filter.ChallengeType != nil {
		args = append(args, *filter.ChallengeType)
		query += fmt.Sprintf(" AND challenge_type = $%d", len(args))
	}
	if filter.GymID != nil {
		args = append(args, *filter.GymID)
		query += fmt.Sprintf(" AND gym_id = $%d", len(args))
	}
	if filter.IsGlobal != nil {
		args = append(args, *filter.IsGlobal)
		query += fmt.Sprintf(" AND is_global = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query challenges: %w", err)
	}
	defer rows.Close()

	var challenges []*model.Challenge
	for rows.Next() {
		c, err := scanner.ScanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan challenge: %w", err)
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

const participationColumns = `id, user_id, challenge_id, current_progress, is_completed, completed_at, joined_at`

func (s *Postgres) InsertParticipation(ctx context.Context, p *model.ChallengeParticipation) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO user_challenges (id, user_id, challenge_id, current_progress, is_completed, joined_at)
		VALUES ($1, $2, $3, $4, false, NOW())
		ON CONFLICT (user_id, challenge_id) DO NOTHING
	`, p.ID, p.UserID, p.ChallengeID, p.CurrentProgress)
	if err != nil {
		return fmt.Errorf("insert participation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyJoined
	}
	return nil
}

func (s *Postgres) GetParticipation(ctx context.Context, userID, challengeID string) (*model.ChallengeParticipation, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+participationColumns+`
		FROM user_challenges
		WHERE user_id = $1 AND challenge_id = $2
	`, userID, challengeID)

	p, err := scanner.ScanParticipation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("participation %s/%s: %w", userID, challengeID, ErrNotFound)
		}
		return nil, fmt.Errorf("get participation: %w", err)
	}
	return p, nil
}

func (s *Postgres) UpdateParticipation(ctx context.Context, p *model.ChallengeParticipation) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE user_challenges
		SET current_progress = $1, is_completed = $2, completed_at = $3
		WHERE user_id = $4 AND challenge_id = $5
	`, p.CurrentProgress, p.IsCompleted, utils.PointerToNullTime(p.CompletedAt), p.UserID, p.ChallengeID)
	if err != nil {
		return fmt.Errorf("update participation: %w", err)
	}
	return nil
}

func (s *Postgres) ListParticipations(ctx context.Context, userID string) ([]*model.ChallengeParticipation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+participationColumns+`
		FROM user_challenges
		WHERE user_id = $1
		ORDER BY joined_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query participations: %w", err)
	}
	defer rows.Close()

	return collectParticipations(rows)
}

// TopParticipants classe les participants par progression décroissante.
// Égalité départagée par user_id croissant pour un ordre reproductible.
func (s *Postgres) TopParticipants(ctx context.Context, challengeID string, limit int) ([]*model.ChallengeParticipation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+participationColumns+`
		FROM user_challenges
		WHERE challenge_id = $1
		ORDER BY current_progress DESC, user_id ASC
		LIMIT $2
	`, challengeID, limit)
	if err != nil {
		return nil, fmt.Errorf("query top participants: %w", err)
	}
	defer rows.Close()

	return collectParticipations(rows)
}

func collectParticipations(rows pgx.Rows) ([]*model.ChallengeParticipation, error) {
	var participations []*model.ChallengeParticipation
	for rows.Next() {
		p, err := scanner.ScanParticipation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participation: %w", err)
		}
		participations = append(participations, p)
	}
	return participations, rows.Err()
}

const userPointsColumns = `user_id, total_points, level, points_to_next_level, weekly_points, monthly_points, updated_at`

// GetOrCreateUserPoints crée paresseusement le grand livre au premier accès
// (niveau 1, 100 points avant le niveau suivant).
func (s *Postgres) GetOrCreateUserPoints(ctx context.Context, userID string) (*model.UserPoints, error) {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_points (user_id, total_points, level, points_to_next_level, weekly_points, monthly_points, updated_at)
		VALUES ($1, 0, $2, $3, 0, 0, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, userID, model.InitialLevel, model.InitialPointsToNext)
	if err != nil {
		return nil, fmt.Errorf("create user points: %w", err)
	}

	row := s.pool.QueryRow(ctx, `
		SELECT `+userPointsColumns+`
		FROM user_points
		WHERE user_id = $1
	`, userID)

	up, err := scanner.ScanUserPoints(row)
	if err != nil {
		return nil, fmt.Errorf("get user points: %w", err)
	}
	return up, nil
}

func (s *Postgres) UpdateUserPoints(ctx context.Context, points *model.UserPoints) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE user_points
		SET total_points = $1, level = $2, points_to_next_level = $3,
			weekly_points = $4, monthly_points = $5, updated_at = NOW()
		WHERE user_id = $6
	`, points.TotalPoints, points.Level, points.PointsToNextLevel,
		points.WeeklyPoints, points.MonthlyPoints, points.UserID)
	if err != nil {
		return fmt.Errorf("update user points: %w", err)
	}
	return nil
}

// TopUserPoints classe les utilisateurs par compteur décroissant,
// égalité départagée par user_id croissant.
func (s *Postgres) TopUserPoints(ctx context.Context, order PointsOrder, limit int) ([]*model.UserPoints, error) {
	var orderColumn string
	switch order {
	case OrderByTotalPoints:
		orderColumn = "total_points"
	case OrderByMonthlyPoints:
		orderColumn = "monthly_points"
	default:
		return nil, fmt.Errorf("unknown points order %q", order)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+userPointsColumns+`
		FROM user_points
		ORDER BY `+orderColumn+` DESC, user_id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top user points: %w", err)
	}
	defer rows.Close()

	var results []*model.UserPoints
	for rows.Next() {
		up, err := scanner.ScanUserPoints(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user points: %w", err)
		}
		results = append(results, up)
	}
	return results, rows.Err()
}

func (s *Postgres) ResetPeriodCounters(ctx context.Context, weekly, monthly bool) error {
	if weekly {
		if _, err := s.pool.Exec(ctx, `UPDATE user_points SET weekly_points = 0, updated_at = NOW()`); err != nil {
			return fmt.Errorf("reset weekly points: %w", err)
		}
	}
	if monthly {
		if _, err := s.pool.Exec(ctx, `UPDATE user_points SET monthly_points = 0, updated_at = NOW()`); err != nil {
			return fmt.Errorf("reset monthly points: %w", err)
		}
	}
	return nil
}

const badgeColumns = `id, name, badge_type, description, icon, points_value`

func (s *Postgres) GetBadge(ctx context.Context, id string) (*model.Badge, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+badgeColumns+` FROM badges WHERE id = $1`, id)

	b, err := scanner.ScanBadge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("badge %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get badge: %w", err)
	}
	return b, nil
}

// FindBadgeByName retourne nil sans erreur si le catalogue ne contient pas ce nom
func (s *Postgres) FindBadgeByName(ctx context.Context, name string) (*model.Badge, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+badgeColumns+` FROM badges WHERE name = $1`, name)

	b, err := scanner.ScanBadge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find badge by name: %w", err)
	}
	return b, nil
}

func (s *Postgres) ListBadges(ctx context.Context) ([]*model.Badge, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+badgeColumns+` FROM badges ORDER BY badge_type ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query badges: %w", err)
	}
	defer rows.Close()

	var badges []*model.Badge
	for rows.Next() {
		b, err := scanner.ScanBadge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// InsertBadgeAward est un compare-and-insert: la contrainte unique
// (user_id, badge_id) arbitre les écritures concurrentes, le perdant
// reçoit ErrAlreadyAwarded.
func (s *Postgres) InsertBadgeAward(ctx context.Context, award *model.BadgeAward) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO user_badges (id, user_id, badge_id, challenge_id, earned_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, badge_id) DO NOTHING
	`, award.ID, award.UserID, award.BadgeID, utils.PointerToNullString(award.ChallengeID), award.EarnedAt)
	if err != nil {
		return fmt.Errorf("insert badge award: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyAwarded
	}
	return nil
}

func (s *Postgres) HasBadgeAward(ctx context.Context, userID, badgeID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM user_badges WHERE user_id = $1 AND badge_id = $2)
	`, userID, badgeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check badge award: %w", err)
	}
	return exists, nil
}

func (s *Postgres) ListBadgeAwards(ctx context.Context, userID string) ([]*model.BadgeAward, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, badge_id, challenge_id, earned_at
		FROM user_badges
		WHERE user_id = $1
		ORDER BY earned_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query badge awards: %w", err)
	}
	defer rows.Close()

	var awards []*model.BadgeAward
	for rows.Next() {
		a, err := scanner.ScanBadgeAward(rows)
		if err != nil {
			return nil, fmt.Errorf("scan badge award: %w", err)
		}
		awards = append(awards, a)
	}
	return awards, rows.Err()
}

// ReplacePartition remplace toutes les lignes d'une partition de classement
// dans une seule transaction: un lecteur ne voit jamais de classement vide
// ou partiel pendant la reconstruction.
func (s *Postgres) ReplacePartition(ctx context.Context, part Partition, entries []*model.LeaderboardEntry) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace partition: %w", err)
	}
	defer tx.Rollback(ctx)

	deleteQuery := `DELETE FROM leaderboard_entries WHERE leaderboard_type = $1`
	args := []interface{}{part.Type}

	if part.ReferenceID != nil {
		args = append(args, *part.ReferenceID)
		deleteQuery += fmt.Sprintf(" AND reference_id = $%d", len(args))
	}
	if part.PeriodStart != nil && part.PeriodEnd != nil {
		args = append(args, *part.PeriodStart, *part.PeriodEnd)
		deleteQuery += fmt.Sprintf(" AND period_start >= $%d AND period_end <= $%d", len(args)-1, len(args))
	}

	if _, err := tx.Exec(ctx, deleteQuery, args...); err != nil {
		return fmt.Errorf("delete partition: %w", err)
	}

	for _, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO leaderboard_entries
				(id, user_id, leaderboard_type, reference_id, score, rank_position, period_start, period_end, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		`, e.ID, e.UserID, e.LeaderboardType, utils.PointerToNullString(e.ReferenceID),
			e.Score, e.RankPosition, utils.PointerToNullTime(e.PeriodStart), utils.PointerToNullTime(e.PeriodEnd))
		if err != nil {
			return fmt.Errorf("insert leaderboard entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace partition: %w", err)
	}
	return nil
}

func (s *Postgres) GetLeaderboard(ctx context.Context, typ model.LeaderboardType, referenceID *string, limit int) ([]*model.LeaderboardEntry, error) {
	query := `
		SELECT id, user_id, leaderboard_type, reference_id, score, rank_position, period_start, period_end, created_at
		FROM leaderboard_entries
		WHERE leaderboard_type = $1`
	args := []interface{}{typ}

	if referenceID != nil {
		args = append(args, *referenceID)
		query += fmt.Sprintf(" AND reference_id = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY rank_position ASC LIMIT $%d", len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*model.LeaderboardEntry
	for rows.Next() {
		e, err := scanner.ScanLeaderboardEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetUserIDByToken valide un token de session et retourne l'utilisateur associé
func (s *Postgres) GetUserIDByToken(ctx context.Context, token string) (string, error) {
	var userID string
	err := s.pool.QueryRow(ctx, `
		SELECT s.user_id
		FROM sessions s
		WHERE s.token = $1
			AND s.is_active = true
			AND s.expires_at > NOW()
	`, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("token not found or expired: %w", ErrNotFound)
		}
		return "", fmt.Errorf("validate token: %w", err)
	}
	return userID, nil
}

var _ Store = (*Postgres)(nil)
