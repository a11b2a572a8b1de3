package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

// MockStatsStore implements store.StatsStore for testing.
type MockStatsStore struct {
	UserTaskCountsFn func(ctx context.Context, userID uuid.UUID) (*store.UserTaskCounts, error)
	TopUsersFn       func(ctx context.Context) ([]*store.UserActivity, error)
	RecentTasksFn    func(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]*domain.Task, error)

	// Default responses used when the corresponding Fn is nil.
	Counts     *store.UserTaskCounts
	Activities []*store.UserActivity
	Tasks      []*domain.Task
	Err        error
}

var _ store.StatsStore = (*MockStatsStore)(nil)

func (m *MockStatsStore) UserTaskCounts(ctx context.Context, userID uuid.UUID) (*store.UserTaskCounts, error) {
	if m.UserTaskCountsFn != nil {
		return m.UserTaskCountsFn(ctx, userID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Counts == nil {
		return &store.UserTaskCounts{}, nil
	}
	return m.Counts, nil
}

func (m *MockStatsStore) TopUsers(ctx context.Context) ([]*store.UserActivity, error) {
	if m.TopUsersFn != nil {
		return m.TopUsersFn(ctx)
	}
	return m.Activities, m.Err
}

func (m *MockStatsStore) RecentTasks(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]*domain.Task, error) {
	if m.RecentTasksFn != nil {
		return m.RecentTasksFn(ctx, userID, since, limit)
	}
	return m.Tasks, m.Err
}
