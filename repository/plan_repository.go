package repository

import (
	"context"

	"goal-planner/domain"
)

type PlanRepository interface {
	Save(ctx context.Context, plan domain.SavedPlan) error
	List(ctx context.Context) ([]domain.SavedPlan, error)
}
