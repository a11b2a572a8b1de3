package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/shrhawk/sprintsync-api/internal/config"
	"github.com/shrhawk/sprintsync-api/internal/generation"
	"google.golang.org/genai"
)

// descriptionPrompt is the fixed instruction template for task-description
// suggestions.
const descriptionPrompt = `Create a task description for: %q
%s
Include what needs to be done, acceptance criteria, and complexity estimate.
Max 500 words.`

// planPrompt is the fixed instruction template for daily planning. The model
// is expected to answer with a single JSON object.
const planPrompt = `Plan daily work for %s.
Tasks: %s

Return JSON with:
- tasks: [{"title", "estimated_minutes", "priority", "description"}]
- total_estimated_minutes: total
- plan_summary: brief overview

Focus on TODO and IN_PROGRESS. 8 hour max. Respond with valid JSON only.`

// Generator implements the generation.Generator interface using
// Google's Gemini API.
type Generator struct {
	logger *slog.Logger
	config config.LLMConfig
	client *genai.Client
	model  string
}

// Ensure Generator implements the generation.Generator interface
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed generator from the LLM configuration.
// Returns an error when the configuration is incomplete; callers that want
// fallback-only operation should not construct a Generator at all.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger: logger,
		config: cfg,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// SuggestDescription implements generation.Generator.SuggestDescription
func (g *Generator) SuggestDescription(ctx context.Context, title, taskContext string) (string, error) {
	contextLine := ""
	if taskContext != "" {
		contextLine = "Context: " + taskContext + "\n"
	}
	prompt := fmt.Sprintf(descriptionPrompt, title, contextLine)

	text, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return "", err
	}

	suggestion := strings.TrimSpace(text)
	if suggestion == "" {
		return "", fmt.Errorf("%w: empty suggestion", generation.ErrInvalidResponse)
	}

	g.logger.InfoContext(ctx, "generated task description", "title", title)
	return suggestion, nil
}

// GenerateDailyPlan implements generation.Generator.GenerateDailyPlan
func (g *Generator) GenerateDailyPlan(
	ctx context.Context,
	userName string,
	tasks []generation.TaskInput,
) (*generation.DailyPlan, error) {
	taskJSON, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode task list: %w", err)
	}

	prompt := fmt.Sprintf(planPrompt, userName, taskJSON)

	text, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed planSchema
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		g.logger.WarnContext(ctx, "failed to parse plan response",
			"error", err,
			"response_length", len(text))
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	plan := &generation.DailyPlan{
		Tasks:                 make([]generation.PlanItem, 0, len(parsed.Tasks)),
		TotalEstimatedMinutes: parsed.TotalEstimatedMinutes,
		PlanSummary:           parsed.PlanSummary,
	}
	for _, item := range parsed.Tasks {
		plan.Tasks = append(plan.Tasks, generation.PlanItem{
			Title:            item.Title,
			EstimatedMinutes: item.EstimatedMinutes,
			Priority:         item.Priority,
			Description:      item.Description,
		})
	}

	g.logger.InfoContext(ctx, "generated daily plan",
		"task_count", len(plan.Tasks),
		"total_minutes", plan.TotalEstimatedMinutes)
	return plan, nil
}

// callWithRetry makes a completion call with exponential backoff for
// transient failures. Parse-level problems are not retried; they surface
// immediately as ErrInvalidResponse.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}
	baseDelaySeconds := g.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 2
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(g.config.Temperature)),
		MaxOutputTokens: int32(g.config.MaxTokens),
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
		if err == nil {
			text := resp.Text()
			if text == "" {
				return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
			}
			return text, nil
		}

		lastErr = err
		g.logger.WarnContext(ctx, "completion API call failed",
			"error", err,
			"attempt", attempt+1,
			"max_attempts", maxRetries+1)

		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, ctx.Err())
		}

		if attempt < maxRetries {
			// Exponential backoff with jitter.
			backoff := time.Duration(float64(baseDelaySeconds)*math.Pow(2, float64(attempt))) * time.Second
			jitter := time.Duration(rng.Int63n(int64(time.Second)))
			select {
			case <-time.After(backoff + jitter):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, ctx.Err())
			}
		}
	}

	return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, lastErr)
}

// stripCodeFence removes a surrounding markdown code fence if the model
// wrapped its JSON answer in one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
