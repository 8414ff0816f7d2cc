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

// progressFixture câble un challenge rejoint, prêt à recevoir de la progression
type progressFixture struct {
	mem        *store.Memory
	challenges *ChallengeService
	rewards    *RewardService
	tracker    *ProgressTracker
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	mem := store.NewMemory()
	rewards := NewRewardService(mem)
	return &progressFixture{
		mem:        mem,
		challenges: NewChallengeService(mem),
		rewards:    rewards,
		tracker:    NewProgressTracker(mem, rewards),
	}
}

func (f *progressFixture) createAndJoin(t *testing.T, userID string, input CreateChallengeInput) *model.Challenge {
	t.Helper()
	ctx := context.Background()

	challenge, err := f.challenges.Create(ctx, "creator", input)
	require.NoError(t, err)

	_, err = f.challenges.Join(ctx, userID, challenge.ID)
	require.NoError(t, err)

	return challenge
}

func targetOf(v float64) *float64 { return &v }

func TestUpdateProgressOverwritesValue(t *testing.T) {
	ctx := context.Background()
	f := newProgressFixture(t)
	challenge := f.createAndJoin(t, "user-1", CreateChallengeInput{
		Name:          "Push-up Volume",
		ChallengeType: model.ChallengeTotalVolume,
		TargetValue:   targetOf(500),
		DurationDays:  30,
	})

	p, event, err := f.tracker.UpdateProgress(ctx, "user-1", challenge.ID, 120)
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.Equal(t, 120.0, p.CurrentProgress)

	// la valeur est écrasée, pas cumulée
	p, event, err = f.tracker.UpdateProgress(ctx, "user-1", challenge.ID, 80)
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.Equal(t, 80.0, p.CurrentProgress)
}

func TestUpdateProgressEmitsCompletionOnce(t *testing.T) {
	ctx := context.Background()
	f := newProgressFixture(t)
	challenge := f.createAndJoin(t, "user-1", CreateChallengeInput{
		Name:          "Iron Endurance",
		ChallengeType: model.ChallengeDuration,
		TargetValue:   targetOf(300),
		DurationDays:  30,
		RewardPoints:  150,
	})

	_, event, err := f.tracker.UpdateProgress(ctx, "user-1", challenge.ID, 100)
	require.NoError(t, err)
	assert.Nil(t, event)

	_, event, err = f.tracker.UpdateProgress(ctx, "user-1", challenge.ID, 300)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, challenge.ID, event.ChallengeID)

	// la participation reste complétée et ne ré-émet jamais
	p, event, err := f.tracker.UpdateProgress(ctx, "user-1", challenge.ID, 450)
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.True(t, p.IsCompleted)
	assert.Equal(t, 450.0, p.CurrentProgress)

	points, err := f.rewards.UserPoints(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 150, points.TotalPoints)
}

func TestUpdateProgressWithoutTargetNeverCompletes(t *testing.T) {
	ctx := context.Background()
	f := newProgressFixture(t)
	challenge := f.createAndJoin(t, "user-1", CreateChallengeInput{
		Name:          "Open Ended",
		ChallengeType: model.ChallengeConsistency,
		DurationDays:  30,
	})

	p, event, err := f.tracker.UpdateProgress(ctx, "user-1", challenge.ID, 1000000)
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.False(t, p.IsCompleted)
}

func TestUpdateProgressValidation(t *testing.T) {
	ctx := context.Background()
	f := newProgressFixture(t)
	challenge := f.createAndJoin(t, "user-1", CreateChallengeInput{
		Name:          "Any",
		ChallengeType: model.ChallengeConsistency,
		TargetValue:   targetOf(10),
		DurationDays:  10,
	})

	_, _, err := f.tracker.UpdateProgress(ctx, "user-1", challenge.ID, -1)
	assert.ErrorIs(t, err, ErrValidation)

	// pas de participation, pas de progression
	_, _, err = f.tracker.UpdateProgress(ctx, "user-2", challenge.ID, 5)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, _, err = f.tracker.UpdateProgress(ctx, "user-1", "missing-challenge", 5)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCompletionAwardsBadgeExactlyOnce(t *testing.T) {
	ctx := context.Background()
	f := newProgressFixture(t)
	f.mem.SeedBadge(&model.Badge{ID: "badge-c", Name: "Century Club", BadgeType: "challenge"})

	badgeID := "badge-c"
	challenge, err := f.challenges.Create(ctx, "creator", CreateChallengeInput{
		Name:          "Bench Press Century",
		ChallengeType: model.ChallengePRBased,
		TargetValue:   targetOf(300),
		DurationDays:  90,
		RewardPoints:  150,
		RewardBadgeID: &badgeID,
	})
	require.NoError(t, err)

	_, err = f.challenges.Join(ctx, "user-1", challenge.ID)
	require.NoError(t, err)

	for _, value := range []float64{100, 200, 300} {
		_, _, err := f.tracker.UpdateProgress(ctx, "user-1", challenge.ID, value)
		require.NoError(t, err)
	}

	awards, err := f.rewards.UserBadges(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, awards, 1)
	assert.Equal(t, "badge-c", awards[0].BadgeID)
	require.NotNil(t, awards[0].ChallengeID)
	assert.Equal(t, challenge.ID, *awards[0].ChallengeID)

	points, err := f.rewards.UserPoints(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 150, points.TotalPoints)
}

func TestCompletedAtIsRecorded(t *testing.T) {
	ctx := context.Background()
	f := newProgressFixture(t)

	frozen := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	f.tracker.now = func() time.Time { return frozen }

	challenge := f.createAndJoin(t, "user-1", CreateChallengeInput{
		Name:          "Any",
		ChallengeType: model.ChallengeConsistency,
		TargetValue:   targetOf(10),
		DurationDays:  10,
	})

	p, event, err := f.tracker.UpdateProgress(ctx, "user-1", challenge.ID, 10)
	require.NoError(t, err)
	require.NotNil(t, event)
	require.NotNil(t, p.CompletedAt)
	assert.Equal(t, frozen, *p.CompletedAt)
	assert.Equal(t, frozen, event.CompletedAt)
}
