package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goal-planner/domain"
)

func TestPlanRepositoryMemory(t *testing.T) {
	repo := NewPlanRepositoryMemory()
	ctx := context.Background()

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)

	first := domain.NewSavedPlan(domain.GoalRequest{Model: "Mercedes C200"}, time.Now())
	second := domain.NewSavedPlan(domain.GoalRequest{Model: "Mercedes E-Class"}, time.Now())
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	plans, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, first.ID, plans[0].ID)
	assert.Equal(t, second.ID, plans[1].ID)

	// The returned slice is a copy.
	plans[0].Goal.Model = "changed"
	again, _ := repo.List(ctx)
	assert.Equal(t, "Mercedes C200", again[0].Goal.Model)
}
