// Package api defines the HTTP handlers, request/response models, and
// error mapping for the public REST surface.
package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/shrhawk/sprintsync-api/internal/domain"
)

// RegisterRequest is the payload for user self-registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// UserCreateRequest is the payload for admin user creation. Unlike
// self-registration it can set the admin flag.
type UserCreateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	IsAdmin  bool   `json:"is_admin"`
}

// UserUpdateRequest carries optional user fields; nil means leave unchanged.
type UserUpdateRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=100"`
	Password *string `json:"password" validate:"omitempty,min=6,max=100"`
}

// UserResponse is the public representation of a user account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse converts a domain user into its API representation.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		IsAdmin:   user.IsAdmin,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// LoginResponse is returned on successful authentication. Refresh responses
// omit the user.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	User        *UserResponse `json:"user,omitempty"`
}

// TaskCreateRequest is the payload for creating a task.
type TaskCreateRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Status      *string    `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
}

// TaskUpdateRequest carries optional task fields; nil means leave unchanged.
type TaskUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Status      *string `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
}

// TaskStatusUpdateRequest changes only the task status.
type TaskStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
}

// TaskTimeUpdateRequest adds logged minutes to a task.
type TaskTimeUpdateRequest struct {
	MinutesToAdd int `json:"minutes_to_add" validate:"required,gt=0,lte=1440"`
}

// TaskAssignmentRequest sets or clears the task assignee.
type TaskAssignmentRequest struct {
	AssignedTo *uuid.UUID `json:"assigned_to"`
}

// TaskResponse is the public representation of a task.
type TaskResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	TotalMinutes int        `json:"total_minutes"`
	UserID       uuid.UUID  `json:"user_id"`
	AssignedTo   *uuid.UUID `json:"assigned_to"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewTaskResponse converts a domain task into its API representation.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       string(task.Status),
		TotalMinutes: task.TotalMinutes,
		UserID:       task.UserID,
		AssignedTo:   task.AssignedTo,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}

// NewTaskResponses converts a slice of domain tasks.
func NewTaskResponses(tasks []*domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, NewTaskResponse(t))
	}
	return responses
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// SuggestionRequest asks for a generated task description.
type SuggestionRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Context string `json:"context" validate:"max=500"`
}

// UserSummaryResponse aggregates the caller's task and time-logging
// activity. Averages and rates carry two decimal places.
type UserSummaryResponse struct {
	TotalTasks            int     `json:"total_tasks"`
	TodoTasks             int     `json:"todo_tasks"`
	InProgressTasks       int     `json:"in_progress_tasks"`
	CompletedTasks        int     `json:"completed_tasks"`
	TotalMinutesLogged    int     `json:"total_minutes_logged"`
	AverageMinutesPerTask float64 `json:"average_minutes_per_task"`
	CompletionRate        float64 `json:"completion_rate"`
}

// TopUserResponse is one row of the admin leaderboard.
type TopUserResponse struct {
	UserID         string  `json:"user_id"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	TotalMinutes   int     `json:"total_minutes"`
	CompletionRate float64 `json:"completion_rate"`
}

// RecentTaskResponse is a trimmed task view for the activity feed.
type RecentTaskResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	TotalMinutes int       `json:"total_minutes"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecentActivityResponse lists the caller's recently updated tasks.
type RecentActivityResponse struct {
	RecentTasks []RecentTaskResponse `json:"recent_tasks"`
}

// HealthResponse is the service liveness body.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
