package repository

import (
	"context"
	"sync"

	"goal-planner/domain"
)

// PlanRepositoryMemory is an in-memory implementation of PlanRepository.
type PlanRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.SavedPlan
}

// NewPlanRepositoryMemory creates a new in-memory plan repository.
func NewPlanRepositoryMemory() *PlanRepositoryMemory {
	return &PlanRepositoryMemory{
		data: []domain.SavedPlan{},
	}
}

// Save stores the plan in memory.
func (r *PlanRepositoryMemory) Save(_ context.Context, plan domain.SavedPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, plan)
	return nil
}

// List returns the saved plans in insertion order.
func (r *PlanRepositoryMemory) List(_ context.Context) ([]domain.SavedPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.SavedPlan, len(r.data))
	copy(out, r.data)
	return out, nil
}
