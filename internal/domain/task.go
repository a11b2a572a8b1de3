package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus enumerates the lifecycle states of a task. Any status may be
// set at any time; no transition rules are enforced.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// IsValid reports whether s is one of the known task statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task validation and time-logging errors. All wrap ErrValidation.
var (
	ErrEmptyTaskID          = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrEmptyTitle           = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrTitleTooLong         = fmt.Errorf("%w: title must be at most 200 characters long", ErrValidation)
	ErrDescriptionTooLong   = fmt.Errorf("%w: description must be at most 2000 characters long", ErrValidation)
	ErrInvalidStatus        = fmt.Errorf("%w: invalid task status", ErrValidation)
	ErrNegativeMinutes      = fmt.Errorf("%w: total minutes cannot be negative", ErrValidation)
	ErrEmptyCreator         = fmt.Errorf("%w: task creator cannot be empty", ErrValidation)
	ErrInvalidTimeIncrement = fmt.Errorf("%w: minutes to add must be between 1 and 1440", ErrValidation)
)

// MaxMinutesPerEntry bounds a single time-logging call to 24 hours.
const MaxMinutesPerEntry = 1440

// Task represents a unit of work created by a user and optionally
// delegated to an assignee.
type Task struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       TaskStatus `json:"status"`
	TotalMinutes int        `json:"total_minutes"`
	UserID       uuid.UUID  `json:"user_id"`               // Creator
	AssignedTo   *uuid.UUID `json:"assigned_to,omitempty"` // Assignee, nil when unassigned
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewTask creates a new Task for the given creator. Status defaults to TODO
// and logged time to zero. Returns an error if validation fails.
func NewTask(title, description string, creator uuid.UUID, assignedTo *uuid.UUID) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      TaskStatusTodo,
		UserID:      creator,
		AssignedTo:  assignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns a sentinel error for the first field that fails.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return ErrTitleTooLong
	}
	if len(t.Description) > 2000 {
		return ErrDescriptionTooLong
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	if t.TotalMinutes < 0 {
		return ErrNegativeMinutes
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyCreator
	}
	return nil
}

// ValidateTimeIncrement checks a single "add time" increment. Accumulated
// time only ever grows through increments that pass this check.
func ValidateTimeIncrement(minutes int) error {
	if minutes < 1 || minutes > MaxMinutesPerEntry {
		return ErrInvalidTimeIncrement
	}
	return nil
}
