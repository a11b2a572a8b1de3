package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/platform/logger"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

// PostgresStatsStore implements the store.StatsStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatsStore creates a new PostgreSQL implementation of the
// StatsStore interface.
func NewPostgresStatsStore(db store.DBTX, logger *slog.Logger) *PostgresStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure PostgresStatsStore implements store.StatsStore interface
var _ store.StatsStore = (*PostgresStatsStore)(nil)

// UserTaskCounts implements store.StatsStore.UserTaskCounts
// A user with no tasks yields a zeroed struct, never an error.
func (s *PostgresStatsStore) UserTaskCounts(ctx context.Context, userID uuid.UUID) (*store.UserTaskCounts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'TODO'),
			COUNT(*) FILTER (WHERE status = 'IN_PROGRESS'),
			COUNT(*) FILTER (WHERE status = 'DONE'),
			COALESCE(SUM(total_minutes), 0)
		FROM tasks
		WHERE user_id = $1
	`

	var counts store.UserTaskCounts
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&counts.TotalTasks,
		&counts.TodoTasks,
		&counts.InProgressTasks,
		&counts.CompletedTasks,
		&counts.TotalMinutes,
	)
	if err != nil {
		log.Error("failed to aggregate user task counts",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	return &counts, nil
}

// TopUsers implements store.StatsStore.TopUsers
// The LEFT JOIN keeps users without any tasks on the board with zero totals.
func (s *PostgresStatsStore) TopUsers(ctx context.Context) ([]*store.UserActivity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			u.id,
			u.full_name,
			u.email,
			COUNT(t.id),
			COUNT(t.id) FILTER (WHERE t.status = 'DONE'),
			COALESCE(SUM(t.total_minutes), 0)
		FROM users u
		LEFT JOIN tasks t ON t.user_id = u.id
		GROUP BY u.id, u.full_name, u.email
		ORDER BY COALESCE(SUM(t.total_minutes), 0) DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query top users", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	activities := []*store.UserActivity{}
	for rows.Next() {
		var a store.UserActivity
		err := rows.Scan(
			&a.UserID,
			&a.FullName,
			&a.Email,
			&a.TotalTasks,
			&a.CompletedTasks,
			&a.TotalMinutes,
		)
		if err != nil {
			log.Error("failed to scan user activity row", slog.String("error", err.Error()))
			return nil, err
		}
		activities = append(activities, &a)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning user activity rows", slog.String("error", err.Error()))
		return nil, err
	}

	return activities, nil
}

// RecentTasks implements store.StatsStore.RecentTasks
func (s *PostgresStatsStore) RecentTasks(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
	limit int,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, title, description, status, total_minutes, user_id, assigned_to, created_at, updated_at
		FROM tasks
		WHERE user_id = $1 AND updated_at >= $2
		ORDER BY updated_at DESC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, userID, since, limit)
	if err != nil {
		log.Error("failed to query recent tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer closeRows(rows, log)

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning task rows", slog.String("error", err.Error()))
		return nil, err
	}

	return tasks, nil
}
