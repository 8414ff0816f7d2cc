package gamification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
)

// RecordService porte l'évaluation des records personnels et leur lecture.
// L'évaluation elle-même (Evaluate) est pure; la persistance du record
// résultant se fait ici, côté appelant.
type RecordService struct {
	store store.Store
}

func NewRecordService(st store.Store) *RecordService {
	return &RecordService{store: st}
}

// RecordStats résume les records d'un utilisateur
type RecordStats struct {
	TotalPRs         int                     `json:"totalPRs"`
	ExercisesWithPRs []model.ExerciseType    `json:"exercisesWithPRs"`
	RecentPRs        []*model.PersonalRecord `json:"recentPRs"`
}

func validateLift(exercise model.ExerciseType, weight float64, reps int) error {
	if !exercise.Valid() {
		return validationErr("unknown exercise type %q", exercise)
	}
	if weight < 0 {
		return validationErr("negative weight %.2f", weight)
	}
	if reps <= 0 {
		return validationErr("reps must be positive, got %d", reps)
	}
	return nil
}

// CheckPR évalue une performance candidate sans rien persister
func (s *RecordService) CheckPR(ctx context.Context, userID string, exercise model.ExerciseType, weight float64, reps int) (bool, error) {
	if err := validateLift(exercise, weight, reps); err != nil {
		return false, err
	}

	best, err := s.store.GetBestPR(ctx, userID, exercise)
	if err != nil {
		return false, fmt.Errorf("load best pr: %w", err)
	}

	return Evaluate(best, exercise, weight, reps), nil
}

// RecordPR évalue la performance et, si c'est un nouveau record, insère la
// ligne PersonalRecord. Retourne (nil, false, nil) si la performance ne bat
// pas le record existant.
func (s *RecordService) RecordPR(ctx context.Context, userID string, exercise model.ExerciseType, weight float64, reps int) (*model.PersonalRecord, bool, error) {
	isNew, err := s.CheckPR(ctx, userID, exercise, weight, reps)
	if err != nil {
		return nil, false, err
	}
	if !isNew {
		return nil, false, nil
	}

	rec := &model.PersonalRecord{
		ID:           uuid.New().String(),
		UserID:       userID,
		ExerciseType: exercise,
		Weight:       weight,
		Reps:         reps,
		AchievedAt:   time.Now(),
	}
	if err := s.store.InsertPersonalRecord(ctx, rec); err != nil {
		return nil, false, fmt.Errorf("persist personal record: %w", err)
	}

	return rec, true, nil
}

// BestPR retourne le meilleur record pour un exercice, nil s'il n'y en a pas
func (s *RecordService) BestPR(ctx context.Context, userID string, exercise model.ExerciseType) (*model.PersonalRecord, error) {
	if !exercise.Valid() {
		return nil, validationErr("unknown exercise type %q", exercise)
	}
	return s.store.GetBestPR(ctx, userID, exercise)
}

// RecentRecords liste les derniers records d'un utilisateur
func (s *RecordService) RecentRecords(ctx context.Context, userID string, limit int) ([]*model.PersonalRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.ListPersonalRecords(ctx, userID, limit)
}

// History liste tous les records d'un utilisateur pour un exercice
func (s *RecordService) History(ctx context.Context, userID string, exercise model.ExerciseType) ([]*model.PersonalRecord, error) {
	if !exercise.Valid() {
		return nil, validationErr("unknown exercise type %q", exercise)
	}
	return s.store.ListPersonalRecordsByExercise(ctx, userID, exercise)
}

// Stats agrège le nombre de records, les exercices couverts et les 5 plus récents
func (s *RecordService) Stats(ctx context.Context, userID string) (*RecordStats, error) {
	records, err := s.store.ListPersonalRecords(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list personal records: %w", err)
	}

	seen := make(map[model.ExerciseType]bool)
	var exercises []model.ExerciseType
	for _, rec := range records {
		if !seen[rec.ExerciseType] {
			seen[rec.ExerciseType] = true
			exercises = append(exercises, rec.ExerciseType)
		}
	}

	recent := records
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return &RecordStats{
		TotalPRs:         len(records),
		ExercisesWithPRs: exercises,
		RecentPRs:        recent,
	}, nil
}
