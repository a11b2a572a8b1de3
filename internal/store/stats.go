package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shrhawk/sprintsync-api/internal/domain"
)

// UserTaskCounts aggregates one user's tasks by status and logged time.
type UserTaskCounts struct {
	TotalTasks      int
	TodoTasks       int
	InProgressTasks int
	CompletedTasks  int
	TotalMinutes    int
}

// UserActivity is one row of the admin leaderboard: a user joined with
// their task totals.
type UserActivity struct {
	UserID         uuid.UUID
	FullName       string
	Email          string
	TotalTasks     int
	CompletedTasks int
	TotalMinutes   int
}

// StatsStore defines read-only aggregation queries over the task table.
type StatsStore interface {
	// UserTaskCounts returns the status breakdown and total minutes for
	// tasks created by userID. A user with no tasks yields all zeros.
	UserTaskCounts(ctx context.Context, userID uuid.UUID) (*UserTaskCounts, error)

	// TopUsers returns every user with their task totals, ordered by
	// total logged minutes descending. Users without tasks are included
	// with zero totals.
	TopUsers(ctx context.Context) ([]*UserActivity, error)

	// RecentTasks returns up to limit tasks created by userID that were
	// updated at or after the since instant, newest-updated-first.
	RecentTasks(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]*domain.Task, error)
}
