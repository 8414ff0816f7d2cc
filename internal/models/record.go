package model

import "time"

// ExerciseType identifie un exercice suivi pour les records personnels
type ExerciseType string

const (
	ExerciseBenchPress ExerciseType = "benchpress"
	ExerciseSquat      ExerciseType = "squat"
	ExerciseDeadlift   ExerciseType = "deadlift"
	ExercisePullUp     ExerciseType = "pullup"
	ExercisePushUp     ExerciseType = "pushup"
	ExerciseDip        ExerciseType = "dip"
)

// ExerciseTypes liste les 6 exercices supportés
var ExerciseTypes = []ExerciseType{
	ExerciseBenchPress,
	ExerciseSquat,
	ExerciseDeadlift,
	ExercisePullUp,
	ExercisePushUp,
	ExerciseDip,
}

// Valid vérifie que le type d'exercice fait partie du catalogue
func (e ExerciseType) Valid() bool {
	switch e {
	case ExerciseBenchPress, ExerciseSquat, ExerciseDeadlift,
		ExercisePullUp, ExercisePushUp, ExerciseDip:
		return true
	}
	return false
}

// Bodyweight indique un exercice au poids du corps (pas de charge externe)
func (e ExerciseType) Bodyweight() bool {
	switch e {
	case ExercisePullUp, ExercisePushUp, ExerciseDip:
		return true
	}
	return false
}

// PersonalRecord représente une performance enregistrée, immuable une fois créée.
// Le "meilleur" record d'un exercice est toujours dérivé du score, jamais stocké.
type PersonalRecord struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	ExerciseType ExerciseType `json:"exerciseType"`
	Weight       float64      `json:"weight"`
	Reps         int          `json:"reps"`
	AchievedAt   time.Time    `json:"achievedAt"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// Score calcule le score comparable d'une performance.
// Formule d'Epley pour les exercices chargés: poids × (1 + reps/30).
// Pour les exercices au poids du corps, le nombre de reps sert de score.
func (r *PersonalRecord) Score() float64 {
	return ExerciseScore(r.ExerciseType, r.Weight, r.Reps)
}

// ExerciseScore applique la formule de score à un couple poids/reps
func ExerciseScore(exercise ExerciseType, weight float64, reps int) float64 {
	if exercise.Bodyweight() {
		return float64(reps)
	}
	return weight * (1 + float64(reps)/30)
}

// ExerciseInfo décrit un exercice pour l'affichage côté client
type ExerciseInfo struct {
	Type        ExerciseType `json:"type"`
	Name        string       `json:"name"`
	Icon        string       `json:"icon"`
	Description string       `json:"description"`
}

// ExerciseCatalog retourne le catalogue des exercices avec leurs icônes
func ExerciseCatalog() []ExerciseInfo {
	return []ExerciseInfo{
		{Type: ExerciseBenchPress, Name: "Bench Press", Icon: "🏋️‍♂️", Description: "Upper body strength"},
		{Type: ExerciseSquat, Name: "Squat", Icon: "🦵", Description: "Lower body power"},
		{Type: ExerciseDeadlift, Name: "Deadlift", Icon: "💪", Description: "Full body strength"},
		{Type: ExercisePullUp, Name: "Pull-ups", Icon: "🔥", Description: "Upper body endurance"},
		{Type: ExercisePushUp, Name: "Push-ups", Icon: "💯", Description: "Bodyweight strength"},
		{Type: ExerciseDip, Name: "Dips", Icon: "⚡", Description: "Tricep power"},
	}
}
