// Package ai provides task-description suggestions and daily planning,
// backed by an external completion API with deterministic local fallbacks.
// External failures of any kind are absorbed here: callers always get a
// usable result, and the Fallback flag records which path produced it.
package ai

import (
	"context"
	"log/slog"

	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/generation"
)

// Suggestion is the result of a description-suggestion request.
// Success is always true; Fallback distinguishes locally generated content
// from model output. This is a reporting convention, not an error signal.
type Suggestion struct {
	Suggestion string `json:"suggestion"`
	Success    bool   `json:"success"`
	Fallback   bool   `json:"fallback"`
}

// PlanTask is a single entry of a daily plan.
type PlanTask struct {
	Title            string `json:"title"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Priority         string `json:"priority"`
	Description      string `json:"description,omitempty"`
}

// DailyPlan is the result of a daily-plan request.
type DailyPlan struct {
	Tasks                 []PlanTask `json:"tasks"`
	TotalEstimatedMinutes int        `json:"total_estimated_minutes"`
	PlanSummary           string     `json:"plan_summary"`
	Success               bool       `json:"success"`
	Fallback              bool       `json:"fallback"`
}

// Service wraps a generation.Generator with local fallbacks. A nil
// generator is valid and puts the service in fallback-only mode.
type Service struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewService creates an AI service. Pass a nil generator to run without an
// external completion API.
func NewService(generator generation.Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if generator == nil {
		logger.Warn("no completion API configured, AI service running in fallback mode")
	}

	return &Service{
		generator: generator,
		logger:    logger.With(slog.String("component", "ai_service")),
	}
}

// SuggestDescription produces a task description for the given title. The
// optional context string is passed through to the model; the fallback path
// ignores it.
func (s *Service) SuggestDescription(ctx context.Context, title, taskContext string) *Suggestion {
	if s.generator == nil {
		return fallbackDescription(title)
	}

	suggestion, err := s.generator.SuggestDescription(ctx, title, taskContext)
	if err != nil {
		s.logger.Error("failed to generate task description, using fallback",
			slog.String("error", err.Error()),
			slog.String("title", title))
		return fallbackDescription(title)
	}

	return &Suggestion{
		Suggestion: suggestion,
		Success:    true,
		Fallback:   false,
	}
}

// GenerateDailyPlan builds a day plan for the user from their active tasks.
// Call failures and unparseable responses both fall back to the local
// deterministic packer.
func (s *Service) GenerateDailyPlan(ctx context.Context, user *domain.User, tasks []*domain.Task) *DailyPlan {
	if s.generator == nil {
		return fallbackDailyPlan(tasks)
	}

	inputs := make([]generation.TaskInput, 0, len(tasks))
	for _, t := range tasks {
		description := t.Description
		if description == "" {
			description = "No description"
		}
		inputs = append(inputs, generation.TaskInput{
			Title:        t.Title,
			Description:  description,
			Status:       string(t.Status),
			TotalMinutes: t.TotalMinutes,
		})
	}

	plan, err := s.generator.GenerateDailyPlan(ctx, user.FullName, inputs)
	if err != nil {
		s.logger.Error("failed to generate daily plan, using fallback",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return fallbackDailyPlan(tasks)
	}

	result := &DailyPlan{
		Tasks:                 make([]PlanTask, 0, len(plan.Tasks)),
		TotalEstimatedMinutes: plan.TotalEstimatedMinutes,
		PlanSummary:           plan.PlanSummary,
		Success:               true,
		Fallback:              false,
	}
	for _, item := range plan.Tasks {
		result.Tasks = append(result.Tasks, PlanTask{
			Title:            item.Title,
			EstimatedMinutes: item.EstimatedMinutes,
			Priority:         item.Priority,
			Description:      item.Description,
		})
	}
	return result
}
