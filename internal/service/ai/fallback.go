package ai

import (
	"fmt"
	"strings"

	"github.com/shrhawk/sprintsync-api/internal/domain"
)

// descriptionKeywords maps title keywords to canned descriptions. Order
// matters: the first matching keyword wins.
var descriptionKeywords = []struct {
	keyword  string
	template string
}{
	{"bug", "Fix the bug. Reproduce, identify cause, implement fix, test."},
	{"feature", "Build the feature. Design, implement, test, document."},
	{"refactor", "Clean up code. Analyze current state, refactor incrementally, test."},
	{"review", "Review the item. Check requirements, provide feedback."},
	{"test", "Write tests. Design test cases, implement, verify coverage."},
}

const genericDescription = "Add detailed requirements and acceptance criteria. Break down if complex."

func fallbackDescription(title string) *Suggestion {
	lower := strings.ToLower(title)
	suggestion := genericDescription
	for _, entry := range descriptionKeywords {
		if strings.Contains(lower, entry.keyword) {
			suggestion = entry.template + "\n\nCustomize as needed."
			break
		}
	}

	return &Suggestion{
		Suggestion: suggestion,
		Success:    true,
		Fallback:   true,
	}
}

// Fallback plan packing limits. In-progress work comes first at a larger
// time box, then fresh tasks until the daily cap is hit.
const (
	maxInProgressItems   = 2
	maxTodoItems         = 3
	inProgressMinutes    = 120
	todoMinutes          = 90
	dailyCapacityMinutes = 420
)

func fallbackDailyPlan(tasks []*domain.Task) *DailyPlan {
	var inProgress, todo []*domain.Task
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskStatusInProgress:
			inProgress = append(inProgress, t)
		case domain.TaskStatusTodo:
			todo = append(todo, t)
		}
	}

	plan := &DailyPlan{
		Tasks:    []PlanTask{},
		Success:  true,
		Fallback: true,
	}

	total := 0
	for i, t := range inProgress {
		if i >= maxInProgressItems {
			break
		}
		plan.Tasks = append(plan.Tasks, PlanTask{
			Title:            t.Title,
			EstimatedMinutes: inProgressMinutes,
			Priority:         "high",
			Description:      "Continue: " + describeOrPlaceholder(t),
		})
		total += inProgressMinutes
	}

	added := 0
	for _, t := range todo {
		if added >= maxTodoItems || total >= dailyCapacityMinutes {
			break
		}
		plan.Tasks = append(plan.Tasks, PlanTask{
			Title:            t.Title,
			EstimatedMinutes: todoMinutes,
			Priority:         "medium",
			Description:      "Start: " + describeOrPlaceholder(t),
		})
		total += todoMinutes
		added++
	}

	newCount := len(todo)
	if newCount > maxTodoItems {
		newCount = maxTodoItems
	}
	plan.TotalEstimatedMinutes = total
	plan.PlanSummary = fmt.Sprintf("Focus on %d current tasks and %d new ones. ~%dh workload.",
		len(inProgress), newCount, total/60)

	return plan
}

func describeOrPlaceholder(t *domain.Task) string {
	if t.Description == "" {
		return "No description"
	}
	return t.Description
}
