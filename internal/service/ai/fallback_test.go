package ai

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrhawk/sprintsync-api/internal/domain"
)

func TestFallbackDescriptionKeywords(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{
			title: "Fix login bug",
			want:  "Fix the bug. Reproduce, identify cause, implement fix, test.\n\nCustomize as needed.",
		},
		{
			title: "New dashboard feature",
			want:  "Build the feature. Design, implement, test, document.\n\nCustomize as needed.",
		},
		{
			title: "Refactor payment module",
			want:  "Clean up code. Analyze current state, refactor incrementally, test.\n\nCustomize as needed.",
		},
		{
			title: "Review pull request",
			want:  "Review the item. Check requirements, provide feedback.\n\nCustomize as needed.",
		},
		{
			title: "Add integration test",
			want:  "Write tests. Design test cases, implement, verify coverage.\n\nCustomize as needed.",
		},
		{
			title: "Deploy to production",
			want:  "Add detailed requirements and acceptance criteria. Break down if complex.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			result := fallbackDescription(tc.title)
			assert.Equal(t, tc.want, result.Suggestion)
			assert.True(t, result.Success)
			assert.True(t, result.Fallback)
		})
	}
}

func TestFallbackDescriptionKeywordPriority(t *testing.T) {
	// "bug" wins over "test" when both appear in the title.
	result := fallbackDescription("Test the bug fix")
	assert.Contains(t, result.Suggestion, "Fix the bug.")
}

func TestFallbackDescriptionCaseInsensitive(t *testing.T) {
	result := fallbackDescription("FIX LOGIN BUG")
	assert.Contains(t, result.Suggestion, "Fix the bug.")
}

func newPlanTask(t *testing.T, title, description string, status domain.TaskStatus) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, description, uuid.New(), nil)
	require.NoError(t, err)
	task.Status = status
	return task
}

func TestFallbackDailyPlanEmpty(t *testing.T) {
	plan := fallbackDailyPlan(nil)

	assert.Empty(t, plan.Tasks)
	assert.Equal(t, 0, plan.TotalEstimatedMinutes)
	assert.Equal(t, "Focus on 0 current tasks and 0 new ones. ~0h workload.", plan.PlanSummary)
	assert.True(t, plan.Success)
	assert.True(t, plan.Fallback)
}

func TestFallbackDailyPlanPrioritizesInProgress(t *testing.T) {
	tasks := []*domain.Task{
		newPlanTask(t, "Ship release", "Finalize changelog", domain.TaskStatusInProgress),
		newPlanTask(t, "Fix flaky test", "", domain.TaskStatusInProgress),
		newPlanTask(t, "Plan sprint", "Draft goals", domain.TaskStatusTodo),
		newPlanTask(t, "Done already", "", domain.TaskStatusDone),
	}

	plan := fallbackDailyPlan(tasks)

	require.Len(t, plan.Tasks, 3)

	assert.Equal(t, "Ship release", plan.Tasks[0].Title)
	assert.Equal(t, 120, plan.Tasks[0].EstimatedMinutes)
	assert.Equal(t, "high", plan.Tasks[0].Priority)
	assert.Equal(t, "Continue: Finalize changelog", plan.Tasks[0].Description)

	assert.Equal(t, "Continue: No description", plan.Tasks[1].Description)

	assert.Equal(t, "Plan sprint", plan.Tasks[2].Title)
	assert.Equal(t, 90, plan.Tasks[2].EstimatedMinutes)
	assert.Equal(t, "medium", plan.Tasks[2].Priority)
	assert.Equal(t, "Start: Draft goals", plan.Tasks[2].Description)

	assert.Equal(t, 330, plan.TotalEstimatedMinutes)
	assert.Equal(t, "Focus on 2 current tasks and 1 new ones. ~5h workload.", plan.PlanSummary)
}

func TestFallbackDailyPlanCapsWorkload(t *testing.T) {
	var tasks []*domain.Task
	for i := 0; i < 3; i++ {
		tasks = append(tasks, newPlanTask(t, fmt.Sprintf("In progress %d", i), "", domain.TaskStatusInProgress))
	}
	for i := 0; i < 5; i++ {
		tasks = append(tasks, newPlanTask(t, fmt.Sprintf("Todo %d", i), "", domain.TaskStatusTodo))
	}

	plan := fallbackDailyPlan(tasks)

	// Two in-progress slots at 120 minutes, then fresh tasks at 90 until
	// the 420-minute cap stops further additions.
	require.Len(t, plan.Tasks, 4)
	assert.Equal(t, 120, plan.Tasks[0].EstimatedMinutes)
	assert.Equal(t, 120, plan.Tasks[1].EstimatedMinutes)
	assert.Equal(t, 90, plan.Tasks[2].EstimatedMinutes)
	assert.Equal(t, 90, plan.Tasks[3].EstimatedMinutes)
	assert.Equal(t, 420, plan.TotalEstimatedMinutes)

	assert.Equal(t, "Focus on 3 current tasks and 3 new ones. ~7h workload.", plan.PlanSummary)
}

func TestFallbackDailyPlanTodoOnly(t *testing.T) {
	tasks := []*domain.Task{
		newPlanTask(t, "First", "", domain.TaskStatusTodo),
		newPlanTask(t, "Second", "", domain.TaskStatusTodo),
		newPlanTask(t, "Third", "", domain.TaskStatusTodo),
		newPlanTask(t, "Fourth", "", domain.TaskStatusTodo),
	}

	plan := fallbackDailyPlan(tasks)

	require.Len(t, plan.Tasks, 3)
	for _, item := range plan.Tasks {
		assert.Equal(t, "medium", item.Priority)
		assert.Equal(t, 90, item.EstimatedMinutes)
	}
	assert.Equal(t, 270, plan.TotalEstimatedMinutes)
	assert.Equal(t, "Focus on 0 current tasks and 3 new ones. ~4h workload.", plan.PlanSummary)
}
