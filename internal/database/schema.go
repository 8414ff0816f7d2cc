package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitSchema crée les tables du moteur si elles n'existent pas. Les
// contraintes uniques portent les invariants du moteur: un badge par couple
// (user, badge), une participation par couple (user, challenge), un grand
// livre par utilisateur.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS personal_records (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			exercise_type VARCHAR(30) NOT NULL,
			weight DOUBLE PRECISION NOT NULL,
			reps INTEGER NOT NULL,
			achieved_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_personal_records_user_exercise
			ON personal_records (user_id, exercise_type)`,
		`CREATE TABLE IF NOT EXISTS challenges (
			id UUID PRIMARY KEY,
			name VARCHAR(150) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			challenge_type VARCHAR(30) NOT NULL,
			exercise_type VARCHAR(30),
			target_value DOUBLE PRECISION,
			target_unit VARCHAR(30),
			duration_days INTEGER NOT NULL,
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ NOT NULL,
			is_global BOOLEAN NOT NULL DEFAULT FALSE,
			gym_id UUID,
			reward_points INTEGER NOT NULL DEFAULT 0,
			reward_badge_id UUID,
			tags TEXT[],
			creator_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS user_challenges (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			challenge_id UUID NOT NULL REFERENCES challenges(id),
			current_progress DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_completed BOOLEAN NOT NULL DEFAULT FALSE,
			completed_at TIMESTAMPTZ,
			joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, challenge_id)
		)`,
		`CREATE TABLE IF NOT EXISTS user_points (
			user_id UUID PRIMARY KEY,
			total_points INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			points_to_next_level INTEGER NOT NULL DEFAULT 100,
			weekly_points INTEGER NOT NULL DEFAULT 0,
			monthly_points INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS badges (
			id UUID PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			badge_type VARCHAR(30) NOT NULL,
			description TEXT,
			icon VARCHAR(50),
			points_value INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS user_badges (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			badge_id UUID NOT NULL REFERENCES badges(id),
			challenge_id UUID,
			earned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, badge_id)
		)`,
		`CREATE TABLE IF NOT EXISTS leaderboard_entries (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			leaderboard_type VARCHAR(30) NOT NULL,
			reference_id UUID,
			score DOUBLE PRECISION NOT NULL,
			rank_position INTEGER NOT NULL,
			period_start TIMESTAMPTZ,
			period_end TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leaderboard_entries_partition
			ON leaderboard_entries (leaderboard_type, reference_id, rank_position)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token VARCHAR(255) PRIMARY KEY,
			user_id UUID NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}
