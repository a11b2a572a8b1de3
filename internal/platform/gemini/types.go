// Package gemini implements the generation interface using Google's
// Gemini completion API.
package gemini

// planSchema mirrors the JSON object the model is instructed to return
// for a daily plan.
type planSchema struct {
	Tasks []planItemSchema `json:"tasks"`

	TotalEstimatedMinutes int    `json:"total_estimated_minutes"`
	PlanSummary           string `json:"plan_summary"`
}

// planItemSchema is a single task entry in the model's plan response.
type planItemSchema struct {
	Title            string `json:"title"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Priority         string `json:"priority"`
	Description      string `json:"description"`
}
