package gamification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
)

func TestCreateChallengeDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewChallengeService(store.NewMemory())

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	challenge, err := svc.Create(ctx, "creator", CreateChallengeInput{
		Name:          "Deadlift Club",
		ChallengeType: model.ChallengePRBased,
		DurationDays:  90,
	})
	require.NoError(t, err)

	// récompense par défaut et dates dérivées de la durée
	assert.Equal(t, DefaultRewardPoints, challenge.RewardPoints)
	assert.Equal(t, start, challenge.StartDate)
	assert.Equal(t, start.AddDate(0, 0, 90), challenge.EndDate)
	assert.Equal(t, "creator", challenge.CreatorID)
}

func TestCreateChallengeValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewChallengeService(store.NewMemory())

	cases := []CreateChallengeInput{
		{ChallengeType: model.ChallengePRBased, DurationDays: 30},
		{Name: "x", ChallengeType: model.ChallengeType("bogus"), DurationDays: 30},
		{Name: "x", ChallengeType: model.ChallengePRBased, DurationDays: 0},
	}
	for _, input := range cases {
		_, err := svc.Create(ctx, "creator", input)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestJoinChallengeOnlyOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewChallengeService(store.NewMemory())

	challenge, err := svc.Create(ctx, "creator", CreateChallengeInput{
		Name:          "Gym Rat",
		ChallengeType: model.ChallengeConsistency,
		DurationDays:  28,
	})
	require.NoError(t, err)

	p, err := svc.Join(ctx, "user-1", challenge.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.CurrentProgress)
	assert.False(t, p.IsCompleted)

	_, err = svc.Join(ctx, "user-1", challenge.ID)
	assert.ErrorIs(t, err, store.ErrAlreadyJoined)

	_, err = svc.Join(ctx, "user-1", "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListChallengesFilters(t *testing.T) {
	ctx := context.Background()
	svc := NewChallengeService(store.NewMemory())

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.Create(ctx, "creator", CreateChallengeInput{
		Name:          "Active Global",
		ChallengeType: model.ChallengeConsistency,
		DurationDays:  30,
		IsGlobal:      true,
	})
	require.NoError(t, err)

	past := now.AddDate(0, -2, 0)
	_, err = svc.Create(ctx, "creator", CreateChallengeInput{
		Name:          "Expired",
		ChallengeType: model.ChallengeConsistency,
		DurationDays:  10,
		StartDate:     &past,
	})
	require.NoError(t, err)

	day := now.AddDate(0, 0, 5)
	active, err := svc.List(ctx, store.ChallengeFilter{ActiveOn: &day})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Active Global", active[0].Name)

	global := true
	globals, err := svc.List(ctx, store.ChallengeFilter{IsGlobal: &global})
	require.NoError(t, err)
	require.Len(t, globals, 1)
	assert.Equal(t, "Active Global", globals[0].Name)
}

func TestSeedStandardChallenges(t *testing.T) {
	ctx := context.Background()
	svc := NewChallengeService(store.NewMemory())

	seeded, err := svc.SeedStandard(ctx, "system")
	require.NoError(t, err)
	assert.Len(t, seeded, 8)

	names := make(map[string]bool)
	for _, c := range seeded {
		names[c.Name] = true
		assert.True(t, c.IsGlobal)
		assert.Greater(t, c.RewardPoints, 0)
	}
	assert.True(t, names["Bench Press Century"])
	assert.True(t, names["30-Day Workout Streak"])
}
