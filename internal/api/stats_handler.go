package api

import (
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/shrhawk/sprintsync-api/internal/api/middleware"
	"github.com/shrhawk/sprintsync-api/internal/api/shared"
	"github.com/shrhawk/sprintsync-api/internal/platform/logger"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

const (
	recentActivityWindow = 7 * 24 * time.Hour
	recentActivityLimit  = 10
)

// StatsHandler serves per-user summaries, the admin leaderboard, and the
// recent-activity feed.
type StatsHandler struct {
	statsStore store.StatsStore
	logger     *slog.Logger
}

// NewStatsHandler creates a StatsHandler with its dependencies.
func NewStatsHandler(statsStore store.StatsStore, baseLogger *slog.Logger) *StatsHandler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}
	return &StatsHandler{
		statsStore: statsStore,
		logger:     baseLogger.With(slog.String("component", "stats_handler")),
	}
}

// UserSummary handles GET /stats/user-summary.
func (h *StatsHandler) UserSummary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	counts, err := h.statsStore.UserTaskCounts(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	var avgMinutes, completionRate float64
	if counts.TotalTasks > 0 {
		avgMinutes = float64(counts.TotalMinutes) / float64(counts.TotalTasks)
		completionRate = float64(counts.CompletedTasks) / float64(counts.TotalTasks) * 100
	}

	shared.RespondWithJSON(w, http.StatusOK, UserSummaryResponse{
		TotalTasks:            counts.TotalTasks,
		TodoTasks:             counts.TodoTasks,
		InProgressTasks:       counts.InProgressTasks,
		CompletedTasks:        counts.CompletedTasks,
		TotalMinutesLogged:    counts.TotalMinutes,
		AverageMinutesPerTask: roundTwoDecimals(avgMinutes),
		CompletionRate:        roundTwoDecimals(completionRate),
	})
}

// TopUsers handles GET /stats/top-users (admin only). Users are ranked by
// total minutes logged; users without tasks still appear.
func (h *StatsHandler) TopUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	activities, err := h.statsStore.TopUsers(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	responses := make([]TopUserResponse, 0, len(activities))
	for _, activity := range activities {
		var completionRate float64
		if activity.TotalTasks > 0 {
			completionRate = float64(activity.CompletedTasks) / float64(activity.TotalTasks) * 100
		}
		responses = append(responses, TopUserResponse{
			UserID:         activity.UserID.String(),
			FullName:       activity.FullName,
			Email:          activity.Email,
			TotalTasks:     activity.TotalTasks,
			CompletedTasks: activity.CompletedTasks,
			TotalMinutes:   activity.TotalMinutes,
			CompletionRate: roundTwoDecimals(completionRate),
		})
	}
	shared.RespondWithJSON(w, http.StatusOK, responses)
}

// RecentActivity handles GET /stats/recent-activity: the caller's tasks
// updated within the last seven days, newest first.
func (h *StatsHandler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	since := time.Now().UTC().Add(-recentActivityWindow)
	tasks, err := h.statsStore.RecentTasks(r.Context(), user.ID, since, recentActivityLimit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	recent := make([]RecentTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		recent = append(recent, RecentTaskResponse{
			ID:           t.ID.String(),
			Title:        t.Title,
			Status:       string(t.Status),
			TotalMinutes: t.TotalMinutes,
			UpdatedAt:    t.UpdatedAt,
		})
	}
	shared.RespondWithJSON(w, http.StatusOK, RecentActivityResponse{RecentTasks: recent})
}

func roundTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
