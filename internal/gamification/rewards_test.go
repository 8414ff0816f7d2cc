package gamification

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
)

func TestUserPointsCreatedLazily(t *testing.T) {
	ctx := context.Background()
	svc := NewRewardService(store.NewMemory())

	points, err := svc.UserPoints(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, points.TotalPoints)
	assert.Equal(t, 1, points.Level)
	assert.Equal(t, 100, points.PointsToNextLevel)
}

func TestAddPointsRecomputesLevel(t *testing.T) {
	ctx := context.Background()
	svc := NewRewardService(store.NewMemory())

	points, err := svc.AddPoints(ctx, "user-1", 950)
	require.NoError(t, err)
	assert.Equal(t, 950, points.TotalPoints)
	assert.Equal(t, 1, points.Level)
	assert.Equal(t, 50, points.PointsToNextLevel)

	points, err = svc.AddPoints(ctx, "user-1", 100)
	require.NoError(t, err)
	assert.Equal(t, 1050, points.TotalPoints)
	assert.Equal(t, 2, points.Level)
	assert.Equal(t, 950, points.PointsToNextLevel)
	assert.Equal(t, 1050, points.WeeklyPoints)
	assert.Equal(t, 1050, points.MonthlyPoints)
}

func TestAddPointsRejectsNegativeDelta(t *testing.T) {
	ctx := context.Background()
	svc := NewRewardService(store.NewMemory())

	_, err := svc.AddPoints(ctx, "user-1", -10)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMilestoneBadgesAwardedOnLevelUp(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	mem.SeedBadge(&model.Badge{ID: "badge-l5", Name: "Level 5", BadgeType: "milestone"})
	svc := NewRewardService(mem)

	// niveau 5 atteint à 4000 points, le badge "Level 5" part une fois
	_, err := svc.AddPoints(ctx, "user-1", 4200)
	require.NoError(t, err)

	awards, err := svc.UserBadges(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, awards, 1)
	assert.Equal(t, "badge-l5", awards[0].BadgeID)

	// nouveau passage de niveau, le badge déjà détenu n'est pas redécerné
	_, err = svc.AddPoints(ctx, "user-1", 1000)
	require.NoError(t, err)

	awards, err = svc.UserBadges(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, awards, 1)
}

func TestMilestoneWithoutCatalogEntryIsSkipped(t *testing.T) {
	ctx := context.Background()
	svc := NewRewardService(store.NewMemory())

	// le catalogue est vide, le passage de niveau n'échoue pas pour autant
	points, err := svc.AddPoints(ctx, "user-1", 5000)
	require.NoError(t, err)
	assert.Equal(t, 6, points.Level)

	awards, err := svc.UserBadges(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, awards)
}

func TestAwardBadgeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	mem.SeedBadge(&model.Badge{ID: "badge-1", Name: "First Timer", BadgeType: "special"})
	svc := NewRewardService(mem)

	award, err := svc.AwardBadge(ctx, "user-1", "badge-1", nil)
	require.NoError(t, err)
	require.NotNil(t, award)

	_, err = svc.AwardBadge(ctx, "user-1", "badge-1", nil)
	assert.ErrorIs(t, err, store.ErrAlreadyAwarded)

	awards, err := svc.UserBadges(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, awards, 1)
}

func TestAwardBadgeBonusCreditsPointsOnce(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	mem.SeedBadge(&model.Badge{ID: "badge-1", Name: "Bonus Badge", BadgeType: "special", PointsValue: 50})
	svc := NewRewardService(mem)

	_, err := svc.AwardBadge(ctx, "user-1", "badge-1", nil)
	require.NoError(t, err)

	points, err := svc.UserPoints(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 50, points.TotalPoints)

	// la deuxième attribution échoue avant tout crédit
	_, err = svc.AwardBadge(ctx, "user-1", "badge-1", nil)
	require.ErrorIs(t, err, store.ErrAlreadyAwarded)

	points, err = svc.UserPoints(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 50, points.TotalPoints)
}

func TestAwardBadgeUnknownBadge(t *testing.T) {
	ctx := context.Background()
	svc := NewRewardService(store.NewMemory())

	_, err := svc.AwardBadge(ctx, "user-1", "missing", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestConcurrentAddPointsLosesNothing(t *testing.T) {
	ctx := context.Background()
	svc := NewRewardService(store.NewMemory())

	const workers = 20
	const delta = 10

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddPoints(ctx, "user-1", delta)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	points, err := svc.UserPoints(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, workers*delta, points.TotalPoints)
	assert.Equal(t, model.LevelForPoints(workers*delta), points.Level)
}
