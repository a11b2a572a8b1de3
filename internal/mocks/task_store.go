package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	CreateFn            func(ctx context.Context, task *domain.Task) error
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	GetVisibleFn        func(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)
	GetForCreatorFn     func(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)
	ListFn              func(ctx context.Context, userID uuid.UUID, opts store.TaskListOptions) ([]*domain.Task, error)
	ListAllFn           func(ctx context.Context) ([]*domain.Task, error)
	ListActiveForUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	UpdateFn            func(ctx context.Context, task *domain.Task) error
	UpdateStatusFn      func(ctx context.Context, id, userID uuid.UUID, status domain.TaskStatus) (*domain.Task, error)
	AddMinutesFn        func(ctx context.Context, id, userID uuid.UUID, minutes int) (*domain.Task, error)
	SetAssigneeFn       func(ctx context.Context, id uuid.UUID, assignee *uuid.UUID) (*domain.Task, error)
	DeleteFn            func(ctx context.Context, id, userID uuid.UUID) error

	// Default responses used when the corresponding Fn is nil.
	Task  *domain.Task
	Tasks []*domain.Task
	Err   error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.Err
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.defaultTask()
}

func (m *MockTaskStore) GetVisible(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	if m.GetVisibleFn != nil {
		return m.GetVisibleFn(ctx, id, userID)
	}
	return m.defaultTask()
}

func (m *MockTaskStore) GetForCreator(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	if m.GetForCreatorFn != nil {
		return m.GetForCreatorFn(ctx, id, userID)
	}
	return m.defaultTask()
}

func (m *MockTaskStore) List(ctx context.Context, userID uuid.UUID, opts store.TaskListOptions) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, opts)
	}
	return m.Tasks, m.Err
}

func (m *MockTaskStore) ListAll(ctx context.Context) ([]*domain.Task, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return m.Tasks, m.Err
}

func (m *MockTaskStore) ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListActiveForUserFn != nil {
		return m.ListActiveForUserFn(ctx, userID)
	}
	return m.Tasks, m.Err
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return m.Err
}

func (m *MockTaskStore) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status domain.TaskStatus) (*domain.Task, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, userID, status)
	}
	return m.defaultTask()
}

func (m *MockTaskStore) AddMinutes(ctx context.Context, id, userID uuid.UUID, minutes int) (*domain.Task, error) {
	if m.AddMinutesFn != nil {
		return m.AddMinutesFn(ctx, id, userID, minutes)
	}
	return m.defaultTask()
}

func (m *MockTaskStore) SetAssignee(ctx context.Context, id uuid.UUID, assignee *uuid.UUID) (*domain.Task, error) {
	if m.SetAssigneeFn != nil {
		return m.SetAssigneeFn(ctx, id, assignee)
	}
	return m.defaultTask()
}

func (m *MockTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, userID)
	}
	return m.Err
}

func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

func (m *MockTaskStore) defaultTask() (*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Task == nil {
		return nil, store.ErrTaskNotFound
	}
	return m.Task, nil
}
