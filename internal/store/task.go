package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shrhawk/sprintsync-api/internal/domain"
)

// TaskListOptions controls which slice of the task table List returns.
type TaskListOptions struct {
	// Status filters to a single status when non-nil.
	Status *domain.TaskStatus

	// AssignedView selects the "my work" view: tasks assigned to the
	// caller plus unassigned tasks the caller created. When false, List
	// returns only tasks the caller created.
	AssignedView bool
}

// TaskStore defines the interface for task data persistence.
// All scoped lookups return ErrTaskNotFound for rows outside the caller's
// scope, indistinguishable from rows that do not exist.
type TaskStore interface {
	// Create saves a new task.
	// Returns ErrInvalidEntity if the creator or assignee does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID with no visibility scoping.
	// Intended for admin operations.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetVisible retrieves a task the given user created or is assigned to.
	GetVisible(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// GetForCreator retrieves a task the given user created. Mutating
	// operations use this scope.
	GetForCreator(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// List returns the tasks visible to userID under the given options,
	// ordered newest-created-first.
	List(ctx context.Context, userID uuid.UUID, opts TaskListOptions) ([]*domain.Task, error)

	// ListAll returns every task in the system, newest-created-first.
	ListAll(ctx context.Context) ([]*domain.Task, error)

	// ListActiveForUser returns the user's TODO and IN_PROGRESS tasks,
	// newest-created-first. Used by the daily planner.
	ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Update persists the task's title, description, status, total minutes,
	// and assignee, bumping the updated timestamp. The row must belong to
	// the creator recorded on the task; returns ErrTaskNotFound otherwise.
	Update(ctx context.Context, task *domain.Task) error

	// UpdateStatus sets the status of a task created by userID.
	// No transition rules are enforced.
	UpdateStatus(ctx context.Context, id, userID uuid.UUID, status domain.TaskStatus) (*domain.Task, error)

	// AddMinutes atomically increments total minutes of a task created by
	// userID. The increment must satisfy domain.ValidateTimeIncrement.
	AddMinutes(ctx context.Context, id, userID uuid.UUID, minutes int) (*domain.Task, error)

	// SetAssignee sets or clears the assignee of a task, unscoped.
	// Intended for admin reassignment.
	SetAssignee(ctx context.Context, id uuid.UUID, assignee *uuid.UUID) (*domain.Task, error)

	// Delete removes a task created by userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// WithTx returns a TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
