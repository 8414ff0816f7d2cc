package gamification

import (
	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
)

// Evaluate décide si une performance candidate supplante le meilleur record
// existant de l'utilisateur pour cet exercice. Sans record existant le
// candidat est toujours un nouveau PR. La comparaison est strictement
// supérieure: un score égal n'est pas un nouveau record.
//
// Le score est l'estimation Epley du max à une répétition,
// poids × (1 + reps/30); pour les exercices au poids du corps le nombre
// de répétitions sert directement de score.
func Evaluate(existingBest *model.PersonalRecord, exercise model.ExerciseType, weight float64, reps int) bool {
	if existingBest == nil {
		return true
	}
	return model.ExerciseScore(exercise, weight, reps) > existingBest.Score()
}
