package mocks

import (
	"context"

	"github.com/shrhawk/sprintsync-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing.
type MockGenerator struct {
	SuggestDescriptionFn func(ctx context.Context, title, taskContext string) (string, error)
	GenerateDailyPlanFn  func(ctx context.Context, userName string, tasks []generation.TaskInput) (*generation.DailyPlan, error)

	// Default responses used when the corresponding Fn is nil.
	Suggestion string
	Plan       *generation.DailyPlan
	Err        error
}

var _ generation.Generator = (*MockGenerator)(nil)

func (m *MockGenerator) SuggestDescription(ctx context.Context, title, taskContext string) (string, error) {
	if m.SuggestDescriptionFn != nil {
		return m.SuggestDescriptionFn(ctx, title, taskContext)
	}
	return m.Suggestion, m.Err
}

func (m *MockGenerator) GenerateDailyPlan(ctx context.Context, userName string, tasks []generation.TaskInput) (*generation.DailyPlan, error) {
	if m.GenerateDailyPlanFn != nil {
		return m.GenerateDailyPlanFn(ctx, userName, tasks)
	}
	return m.Plan, m.Err
}
