package generation

import "context"

// TaskInput is the slice of task state handed to the generator when
// building a daily plan.
type TaskInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	TotalMinutes int    `json:"total_minutes"`
}

// PlanItem is a single entry of a generated daily plan.
type PlanItem struct {
	Title            string `json:"title"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Priority         string `json:"priority"` // "high", "medium", "low"
	Description      string `json:"description,omitempty"`
}

// DailyPlan is the structured result of a daily planning call.
type DailyPlan struct {
	Tasks                 []PlanItem `json:"tasks"`
	TotalEstimatedMinutes int        `json:"total_estimated_minutes"`
	PlanSummary           string     `json:"plan_summary"`
}

// Generator produces task descriptions and daily plans from an external
// completion API.
type Generator interface {
	// SuggestDescription generates a task description for the given title,
	// optionally informed by extra context.
	SuggestDescription(ctx context.Context, title, taskContext string) (string, error)

	// GenerateDailyPlan builds a structured day plan for the named user
	// from their active tasks.
	GenerateDailyPlan(ctx context.Context, userName string, tasks []TaskInput) (*DailyPlan, error)
}
