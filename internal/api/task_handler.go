package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shrhawk/sprintsync-api/internal/api/middleware"
	"github.com/shrhawk/sprintsync-api/internal/api/shared"
	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/platform/logger"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

// TaskHandler serves task CRUD, status transitions, time logging, and
// assignment.
type TaskHandler struct {
	taskStore store.TaskStore
	userStore store.UserStore
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewTaskHandler creates a TaskHandler with its dependencies.
func NewTaskHandler(
	taskStore store.TaskStore,
	userStore store.UserStore,
	validate *validator.Validate,
	baseLogger *slog.Logger,
) *TaskHandler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}
	return &TaskHandler{
		taskStore: taskStore,
		userStore: userStore,
		validate:  validate,
		logger:    baseLogger.With(slog.String("component", "task_handler")),
	}
}

// List handles GET /tasks. By default it returns the caller's working view:
// tasks assigned to them plus their own unassigned tasks. With
// assigned_to_me=false it returns only tasks the caller created. An optional
// status_filter narrows by status.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	opts := store.TaskListOptions{AssignedView: true}
	if raw := r.URL.Query().Get("assigned_to_me"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "assigned_to_me must be a boolean")
			return
		}
		opts.AssignedView = parsed
	}
	if raw := r.URL.Query().Get("status_filter"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.IsValid() {
			shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "status_filter must be one of: TODO IN_PROGRESS DONE")
			return
		}
		opts.Status = &status
	}

	tasks, err := h.taskStore.List(r.Context(), user.ID, opts)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
		return
	}
	shared.RespondWithJSON(w, http.StatusOK, NewTaskResponses(tasks))
}

// Create handles POST /tasks. The assignee defaults to the creator;
// assigning to anyone else requires admin and an existing target user.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req TaskCreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, ValidationErrorMessage(err))
		return
	}

	assignedTo := req.AssignedTo
	if assignedTo != nil && *assignedTo != user.ID {
		if !user.IsAdmin {
			shared.RespondWithError(w, r, http.StatusForbidden, "Only admins can assign tasks to others")
			return
		}
		if _, err := h.userStore.GetByID(r.Context(), *assignedTo); err != nil {
			respondMappedError(w, r, log, err, "User not found")
			return
		}
	}
	if assignedTo == nil {
		id := user.ID
		assignedTo = &id
	}

	task, err := domain.NewTask(req.Title, req.Description, user.ID, assignedTo)
	if err != nil {
		respondMappedError(w, r, log, err, "Task not found")
		return
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		respondMappedError(w, r, log, err, "Task not found")
		return
	}

	log.Info("task created", slog.String("task_id", task.ID.String()),
		slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, http.StatusCreated, NewTaskResponse(task))
}

// Get handles GET /tasks/{taskID}. Visible to the creator and the assignee.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(w, r, "Task not found")
	if !ok {
		return
	}

	task, err := h.taskStore.GetVisible(r.Context(), taskID, user.ID)
	if err != nil {
		respondMappedError(w, r, log, err, "Task not found")
		return
	}
	shared.RespondWithJSON(w, http.StatusOK, NewTaskResponse(task))
}

// Update handles PUT /tasks/{taskID}. Only the creator can edit a task.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(w, r, "Task not found")
	if !ok {
		return
	}

	var req TaskUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, ValidationErrorMessage(err))
		return
	}

	task, err := h.taskStore.GetForCreator(r.Context(), taskID, user.ID)
	if err != nil {
		respondMappedError(w, r, log, err, "Task not found")
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		respondMappedError(w, r, log, err, "Task not found")
		return
	}
	shared.RespondWithJSON(w, http.StatusOK, NewTaskResponse(task))
}

// UpdateStatus handles PATCH /tasks/{taskID}/status.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(w, r, "Not found")
	if !ok {
		return
	}

	var req TaskStatusUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, ValidationErrorMessage(err))
		return
	}

	task, err := h.taskStore.UpdateStatus(r.Context(), taskID, user.ID, domain.TaskStatus(req.Status))
	if err != nil {
		respondMappedError(w, r, log, err, "Not found")
		return
	}
	shared.RespondWithJSON(w, http.StatusOK, NewTaskResponse(task))
}

// AddTime handles PATCH /tasks/{taskID}/time, logging minutes against the
// task's running total.
func (h *TaskHandler) AddTime(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(w, r, "Task not found")
	if !ok {
		return
	}

	var req TaskTimeUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, ValidationErrorMessage(err))
		return
	}

	task, err := h.taskStore.AddMinutes(r.Context(), taskID, user.ID, req.MinutesToAdd)
	if err != nil {
		respondMappedError(w, r, log, err, "Task not found")
		return
	}

	log.Info("time logged", slog.String("task_id", task.ID.String()),
		slog.Int("minutes", req.MinutesToAdd))
	shared.RespondWithJSON(w, http.StatusOK, NewTaskResponse(task))
}

// Assign handles PATCH /tasks/{taskID}/assign (admin only). A nil
// assigned_to clears the assignment.
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	taskID, ok := parseTaskID(w, r, "Task not found")
	if !ok {
		return
	}

	var req TaskAssignmentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.AssignedTo != nil {
		if _, err := h.userStore.GetByID(r.Context(), *req.AssignedTo); err != nil {
			respondMappedError(w, r, log, err, "Assigned user not found")
			return
		}
	}

	task, err := h.taskStore.SetAssignee(r.Context(), taskID, req.AssignedTo)
	if err != nil {
		respondMappedError(w, r, log, err, "Task not found")
		return
	}
	shared.RespondWithJSON(w, http.StatusOK, NewTaskResponse(task))
}

// Delete handles DELETE /tasks/{taskID}. Only the creator can delete.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(w, r, "Task not found")
	if !ok {
		return
	}

	if err := h.taskStore.Delete(r.Context(), taskID, user.ID); err != nil {
		respondMappedError(w, r, log, err, "Task not found")
		return
	}

	log.Info("task deleted", slog.String("task_id", taskID.String()))
	shared.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Task successfully deleted"})
}

// ListAll handles GET /tasks/admin/all (admin only).
func (h *TaskHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	tasks, err := h.taskStore.ListAll(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, log, err, http.StatusInternalServerError, "Internal server error")
		return
	}
	shared.RespondWithJSON(w, http.StatusOK, NewTaskResponses(tasks))
}

func parseTaskID(w http.ResponseWriter, r *http.Request, notFoundMessage string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "taskID")
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, notFoundMessage)
		return uuid.Nil, false
	}
	return id, true
}
