package gamification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
)

func TestRecordPRPersistsOnlyNewRecords(t *testing.T) {
	ctx := context.Background()
	svc := NewRecordService(store.NewMemory())

	rec, isNew, err := svc.RecordPR(ctx, "user-1", model.ExerciseBenchPress, 100, 5)
	require.NoError(t, err)
	require.True(t, isNew)
	require.NotNil(t, rec)
	assert.NotEmpty(t, rec.ID)

	// performance inférieure, rien n'est inséré
	rec, isNew, err = svc.RecordPR(ctx, "user-1", model.ExerciseBenchPress, 90, 8)
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Nil(t, rec)

	records, err := svc.RecentRecords(ctx, "user-1", 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRecordPRKeepsFullHistory(t *testing.T) {
	ctx := context.Background()
	svc := NewRecordService(store.NewMemory())

	_, _, err := svc.RecordPR(ctx, "user-1", model.ExerciseSquat, 100, 5)
	require.NoError(t, err)
	_, _, err = svc.RecordPR(ctx, "user-1", model.ExerciseSquat, 120, 5)
	require.NoError(t, err)

	history, err := svc.History(ctx, "user-1", model.ExerciseSquat)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	best, err := svc.BestPR(ctx, "user-1", model.ExerciseSquat)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 120.0, best.Weight)
}

func TestRecordPRValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewRecordService(store.NewMemory())

	_, _, err := svc.RecordPR(ctx, "user-1", model.ExerciseType("yoga"), 50, 5)
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.RecordPR(ctx, "user-1", model.ExerciseBenchPress, -10, 5)
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.RecordPR(ctx, "user-1", model.ExerciseBenchPress, 50, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecordsAreIsolatedPerUserAndExercise(t *testing.T) {
	ctx := context.Background()
	svc := NewRecordService(store.NewMemory())

	_, _, err := svc.RecordPR(ctx, "user-1", model.ExerciseBenchPress, 100, 5)
	require.NoError(t, err)

	// un autre utilisateur part de zéro sur le même exercice
	isPR, err := svc.CheckPR(ctx, "user-2", model.ExerciseBenchPress, 40, 5)
	require.NoError(t, err)
	assert.True(t, isPR)

	// le record de bench ne pèse pas sur le squat
	isPR, err = svc.CheckPR(ctx, "user-1", model.ExerciseSquat, 40, 5)
	require.NoError(t, err)
	assert.True(t, isPR)
}

func TestStatsAggregatesRecords(t *testing.T) {
	ctx := context.Background()
	svc := NewRecordService(store.NewMemory())

	_, _, err := svc.RecordPR(ctx, "user-1", model.ExerciseBenchPress, 100, 5)
	require.NoError(t, err)
	_, _, err = svc.RecordPR(ctx, "user-1", model.ExerciseBenchPress, 110, 5)
	require.NoError(t, err)
	_, _, err = svc.RecordPR(ctx, "user-1", model.ExerciseDeadlift, 150, 3)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalPRs)
	assert.Len(t, stats.ExercisesWithPRs, 2)
	assert.Len(t, stats.RecentPRs, 3)
}
