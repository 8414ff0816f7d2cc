package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
)

func TestEvaluateFirstLiftIsAlwaysARecord(t *testing.T) {
	assert.True(t, Evaluate(nil, model.ExerciseBenchPress, 60, 5))
	assert.True(t, Evaluate(nil, model.ExercisePushUp, 0, 1))
}

func TestEvaluateHigherEstimatedOneRepMaxWins(t *testing.T) {
	// 100kg x 5 reps => score Epley 116.67
	best := &model.PersonalRecord{
		ExerciseType: model.ExerciseBenchPress,
		Weight:       100,
		Reps:         5,
	}

	// 90kg x 8 reps => 114.0, en dessous du record
	assert.False(t, Evaluate(best, model.ExerciseBenchPress, 90, 8))

	// 110kg x 3 reps => 121.0, nouveau record
	assert.True(t, Evaluate(best, model.ExerciseBenchPress, 110, 3))
}

func TestEvaluateEqualScoreIsNotARecord(t *testing.T) {
	// 95kg x 6 reps => 114.0
	best := &model.PersonalRecord{
		ExerciseType: model.ExerciseSquat,
		Weight:       95,
		Reps:         6,
	}

	// même score exactement, la comparaison est strictement supérieure
	assert.False(t, Evaluate(best, model.ExerciseSquat, 95, 6))
}

func TestEvaluateBodyweightExercisesCompareReps(t *testing.T) {
	best := &model.PersonalRecord{
		ExerciseType: model.ExercisePullUp,
		Weight:       0,
		Reps:         12,
	}

	// le poids est ignoré pour les exercices au poids du corps
	assert.False(t, Evaluate(best, model.ExercisePullUp, 20, 12))
	assert.True(t, Evaluate(best, model.ExercisePullUp, 0, 13))
}

func TestExerciseScoreFormula(t *testing.T) {
	assert.InDelta(t, 116.6667, model.ExerciseScore(model.ExerciseBenchPress, 100, 5), 0.001)
	assert.InDelta(t, 114.0, model.ExerciseScore(model.ExerciseBenchPress, 90, 8), 0.001)
	assert.Equal(t, 15.0, model.ExerciseScore(model.ExerciseDip, 80, 15))
}
