package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedPlan is a goal the user asked to keep.
type SavedPlan struct {
	ID      uuid.UUID   `json:"id"`
	Goal    GoalRequest `json:"goal"`
	SavedAt time.Time   `json:"saved_at"`
}

// NewSavedPlan stamps goal with a fresh id.
func NewSavedPlan(goal GoalRequest, now time.Time) SavedPlan {
	return SavedPlan{
		ID:      uuid.New(),
		Goal:    goal,
		SavedAt: now.UTC(),
	}
}
