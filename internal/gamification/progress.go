package gamification

import (
	"context"
	"fmt"
	"time"

	model "github.com/tusharpathaknyu/GymEZ-sub003/internal/models"
	"github.com/tusharpathaknyu/GymEZ-sub003/internal/store"
)

// CompletionEvent est le fait émis à la première complétion d'une
// participation, consommé par le Reward Dispatcher.
type CompletionEvent struct {
	UserID      string    `json:"userId"`
	ChallengeID string    `json:"challengeId"`
	CompletedAt time.Time `json:"completedAt"`
}

// ProgressTracker enregistre la progression d'un participant et détecte la
// première complétion. La progression est écrasée, pas cumulée: l'appelant
// fournit le total courant faisant autorité.
type ProgressTracker struct {
	store   store.Store
	rewards *RewardService
	now     func() time.Time
}

func NewProgressTracker(st store.Store, rewards *RewardService) *ProgressTracker {
	return &ProgressTracker{store: st, rewards: rewards, now: time.Now}
}

// applyProgress écrase la progression et verrouille la complétion.
// IsCompleted est à sens unique: une participation déjà complétée continue
// d'enregistrer sa progression mais ne ré-émet jamais d'événement, ce qui
// garantit qu'une récompense part au plus une fois par participation.
func applyProgress(challenge *model.Challenge, p *model.ChallengeParticipation, value float64, now time.Time) *CompletionEvent {
	p.CurrentProgress = value

	if p.IsCompleted {
		return nil
	}
	// sans valeur cible, jamais de complétion automatique par ce chemin
	if challenge.TargetValue == nil || value < *challenge.TargetValue {
		return nil
	}

	p.IsCompleted = true
	p.CompletedAt = &now

	return &CompletionEvent{
		UserID:      p.UserID,
		ChallengeID: p.ChallengeID,
		CompletedAt: now,
	}
}

// UpdateProgress écrase la progression du participant et, à la première
// complétion, déclenche la distribution des récompenses. Retourne la
// participation mise à jour et l'événement de complétion s'il a été émis.
func (t *ProgressTracker) UpdateProgress(ctx context.Context, userID, challengeID string, value float64) (*model.ChallengeParticipation, *CompletionEvent, error) {
	if value < 0 {
		return nil, nil, validationErr("negative progress %.2f", value)
	}

	challenge, err := t.store.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, nil, err
	}

	participation, err := t.store.GetParticipation(ctx, userID, challengeID)
	if err != nil {
		return nil, nil, err
	}

	event := applyProgress(challenge, participation, value, t.now())

	if err := t.store.UpdateParticipation(ctx, participation); err != nil {
		return nil, nil, fmt.Errorf("persist participation: %w", err)
	}

	if event != nil {
		if err := t.rewards.OnChallengeCompleted(ctx, challenge, userID); err != nil {
			return nil, nil, err
		}
	}

	return participation, event, nil
}

// Progress retourne la participation courante d'un utilisateur sur un challenge
func (t *ProgressTracker) Progress(ctx context.Context, userID, challengeID string) (*model.ChallengeParticipation, error) {
	return t.store.GetParticipation(ctx, userID, challengeID)
}
