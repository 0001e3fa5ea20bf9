package service

import (
	"context"
	"log/slog"
	"time"

	"goal-planner/domain"
	"goal-planner/repository"
)

// PlanService keeps goals the user chose to save.
type PlanService struct {
	repo repository.PlanRepository
	log  *slog.Logger
	now  func() time.Time
}

func NewPlanService(repo repository.PlanRepository, log *slog.Logger) *PlanService {
	return &PlanService{repo: repo, log: log, now: time.Now}
}

// SaveGoal stores goal under a new id.
func (s *PlanService) SaveGoal(ctx context.Context, goal domain.GoalRequest) (domain.SavedPlan, error) {
	if err := validateGoal(goal); err != nil {
		return domain.SavedPlan{}, err
	}
	plan := domain.NewSavedPlan(goal, s.now())
	if err := s.repo.Save(ctx, plan); err != nil {
		return domain.SavedPlan{}, err
	}
	s.log.Info("goal saved", "id", plan.ID, "model", goal.Model, "year", goal.Year)
	return plan, nil
}

// ListPlans returns every saved plan.
func (s *PlanService) ListPlans(ctx context.Context) ([]domain.SavedPlan, error) {
	return s.repo.List(ctx)
}
