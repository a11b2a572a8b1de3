package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/shrhawk/sprintsync-api/internal/api/middleware"
	"github.com/shrhawk/sprintsync-api/internal/api/shared"
	"github.com/shrhawk/sprintsync-api/internal/platform/logger"
	"github.com/shrhawk/sprintsync-api/internal/service/ai"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

// AIHandler serves description suggestions and daily plans.
type AIHandler struct {
	aiService *ai.Service
	taskStore store.TaskStore
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewAIHandler creates an AIHandler with its dependencies.
func NewAIHandler(
	aiService *ai.Service,
	taskStore store.TaskStore,
	validate *validator.Validate,
	baseLogger *slog.Logger,
) *AIHandler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}
	return &AIHandler{
		aiService: aiService,
		taskStore: taskStore,
		validate:  validate,
		logger:    baseLogger.With(slog.String("component", "ai_handler")),
	}
}

// SuggestDescription handles POST /ai/suggest-description. The response is
// always 200; the fallback flag tells the client which path produced it.
func (h *AIHandler) SuggestDescription(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req SuggestionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, ValidationErrorMessage(err))
		return
	}

	suggestion := h.aiService.SuggestDescription(r.Context(), req.Title, req.Context)
	shared.RespondWithJSON(w, http.StatusOK, suggestion)
}

// DailyPlan handles GET /ai/daily-plan, planning the caller's day from
// their open tasks.
func (h *AIHandler) DailyPlan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	tasks, err := h.taskStore.ListActiveForUser(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	plan := h.aiService.GenerateDailyPlan(r.Context(), user, tasks)
	shared.RespondWithJSON(w, http.StatusOK, plan)
}
