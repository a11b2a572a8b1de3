package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/generation"
	"github.com/shrhawk/sprintsync-api/internal/mocks"
)

func testUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("planner@example.com", "Planner", "password123")
	require.NoError(t, err)
	return user
}

func TestSuggestDescriptionUsesGenerator(t *testing.T) {
	generator := &mocks.MockGenerator{Suggestion: "Investigate and fix the flaky login flow."}
	svc := NewService(generator, nil)

	result := svc.SuggestDescription(context.Background(), "Fix login bug", "")

	assert.Equal(t, "Investigate and fix the flaky login flow.", result.Suggestion)
	assert.True(t, result.Success)
	assert.False(t, result.Fallback)
}

func TestSuggestDescriptionFallsBackOnError(t *testing.T) {
	generator := &mocks.MockGenerator{Err: errors.New("rate limited")}
	svc := NewService(generator, nil)

	result := svc.SuggestDescription(context.Background(), "Fix login bug", "")

	assert.Contains(t, result.Suggestion, "Fix the bug.")
	assert.True(t, result.Success)
	assert.True(t, result.Fallback)
}

func TestSuggestDescriptionWithoutGenerator(t *testing.T) {
	svc := NewService(nil, nil)

	result := svc.SuggestDescription(context.Background(), "Plan offsite", "")

	assert.Equal(t, "Add detailed requirements and acceptance criteria. Break down if complex.", result.Suggestion)
	assert.True(t, result.Fallback)
}

func TestGenerateDailyPlanUsesGenerator(t *testing.T) {
	generator := &mocks.MockGenerator{
		Plan: &generation.DailyPlan{
			Tasks: []generation.PlanItem{
				{Title: "Ship release", EstimatedMinutes: 180, Priority: "high", Description: "Finish and tag"},
			},
			TotalEstimatedMinutes: 180,
			PlanSummary:           "One focused deliverable today.",
		},
	}
	svc := NewService(generator, nil)

	task, err := domain.NewTask("Ship release", "Finish and tag", uuid.New(), nil)
	require.NoError(t, err)
	task.Status = domain.TaskStatusInProgress

	plan := svc.GenerateDailyPlan(context.Background(), testUser(t), []*domain.Task{task})

	require.Len(t, plan.Tasks, 1)
	assert.Equal(t, "Ship release", plan.Tasks[0].Title)
	assert.Equal(t, 180, plan.TotalEstimatedMinutes)
	assert.Equal(t, "One focused deliverable today.", plan.PlanSummary)
	assert.True(t, plan.Success)
	assert.False(t, plan.Fallback)
}

func TestGenerateDailyPlanFallsBackOnError(t *testing.T) {
	generator := &mocks.MockGenerator{Err: errors.New("upstream timeout")}
	svc := NewService(generator, nil)

	task, err := domain.NewTask("Ship release", "", uuid.New(), nil)
	require.NoError(t, err)
	task.Status = domain.TaskStatusInProgress

	plan := svc.GenerateDailyPlan(context.Background(), testUser(t), []*domain.Task{task})

	require.Len(t, plan.Tasks, 1)
	assert.Equal(t, "high", plan.Tasks[0].Priority)
	assert.True(t, plan.Fallback)
}

func TestGenerateDailyPlanWithoutGenerator(t *testing.T) {
	svc := NewService(nil, nil)

	plan := svc.GenerateDailyPlan(context.Background(), testUser(t), nil)

	assert.True(t, plan.Success)
	assert.True(t, plan.Fallback)
	assert.Empty(t, plan.Tasks)
}
