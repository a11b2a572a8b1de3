package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/mocks"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

func newTaskHandlerForTest(taskStore *mocks.MockTaskStore, userStore *mocks.MockUserStore) *TaskHandler {
	if taskStore == nil {
		taskStore = &mocks.MockTaskStore{}
	}
	if userStore == nil {
		userStore = &mocks.MockUserStore{}
	}
	return NewTaskHandler(taskStore, userStore, NewValidator(), nil)
}

func TestCreateTaskDefaultsAssigneeToCreator(t *testing.T) {
	user := newTestUser(t, "creator@example.com", false)

	var created *domain.Task
	taskStore := &mocks.MockTaskStore{
		CreateFn: func(ctx context.Context, task *domain.Task) error {
			created = task
			return nil
		},
	}
	handler := newTaskHandlerForTest(taskStore, nil)

	req := newAuthenticatedRequest(t, http.MethodPost, "/tasks",
		map[string]string{"title": "Write docs"}, user, nil)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)
	require.NotNil(t, created.AssignedTo)
	assert.Equal(t, user.ID, *created.AssignedTo)
	assert.Equal(t, user.ID, created.UserID)
	assert.Equal(t, domain.TaskStatusTodo, created.Status)
}

func TestCreateTaskWithExplicitStatus(t *testing.T) {
	user := newTestUser(t, "creator@example.com", false)

	var created *domain.Task
	taskStore := &mocks.MockTaskStore{
		CreateFn: func(ctx context.Context, task *domain.Task) error {
			created = task
			return nil
		},
	}
	handler := newTaskHandlerForTest(taskStore, nil)

	req := newAuthenticatedRequest(t, http.MethodPost, "/tasks",
		map[string]string{"title": "Spike caching", "status": "IN_PROGRESS"}, user, nil)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)
	assert.Equal(t, domain.TaskStatusInProgress, created.Status)
}

func TestCreateTaskCrossAssignRequiresAdmin(t *testing.T) {
	user := newTestUser(t, "regular@example.com", false)
	other := uuid.New()

	handler := newTaskHandlerForTest(nil, nil)

	req := newAuthenticatedRequest(t, http.MethodPost, "/tasks",
		map[string]interface{}{"title": "Delegate this", "assigned_to": other}, user, nil)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Only admins can assign tasks to others", errorDetail(t, rec))
}

func TestCreateTaskCrossAssignUnknownTarget(t *testing.T) {
	admin := newTestUser(t, "admin@example.com", true)
	userStore := &mocks.MockUserStore{} // no User set: lookups miss

	handler := newTaskHandlerForTest(nil, userStore)

	req := newAuthenticatedRequest(t, http.MethodPost, "/tasks",
		map[string]interface{}{"title": "Delegate this", "assigned_to": uuid.New()}, admin, nil)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", errorDetail(t, rec))
}

func TestCreateTaskAdminCrossAssign(t *testing.T) {
	admin := newTestUser(t, "admin@example.com", true)
	target := newTestUser(t, "target@example.com", false)

	var created *domain.Task
	taskStore := &mocks.MockTaskStore{
		CreateFn: func(ctx context.Context, task *domain.Task) error {
			created = task
			return nil
		},
	}
	handler := newTaskHandlerForTest(taskStore, &mocks.MockUserStore{User: target})

	req := newAuthenticatedRequest(t, http.MethodPost, "/tasks",
		map[string]interface{}{"title": "Delegate this", "assigned_to": target.ID}, admin, nil)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created.AssignedTo)
	assert.Equal(t, target.ID, *created.AssignedTo)
	assert.Equal(t, admin.ID, created.UserID)
}

func TestCreateTaskValidation(t *testing.T) {
	user := newTestUser(t, "creator@example.com", false)
	handler := newTaskHandlerForTest(nil, nil)

	req := newAuthenticatedRequest(t, http.MethodPost, "/tasks",
		map[string]string{"title": ""}, user, nil)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListTasksParsesQuery(t *testing.T) {
	user := newTestUser(t, "lister@example.com", false)

	var gotOpts store.TaskListOptions
	taskStore := &mocks.MockTaskStore{
		ListFn: func(ctx context.Context, userID uuid.UUID, opts store.TaskListOptions) ([]*domain.Task, error) {
			gotOpts = opts
			return nil, nil
		},
	}
	handler := newTaskHandlerForTest(taskStore, nil)

	req := newAuthenticatedRequest(t, http.MethodGet,
		"/tasks?assigned_to_me=false&status_filter=DONE", nil, user, nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, gotOpts.AssignedView)
	require.NotNil(t, gotOpts.Status)
	assert.Equal(t, domain.TaskStatusDone, *gotOpts.Status)
}

func TestListTasksDefaultsToAssignedView(t *testing.T) {
	user := newTestUser(t, "lister@example.com", false)

	var gotOpts store.TaskListOptions
	taskStore := &mocks.MockTaskStore{
		ListFn: func(ctx context.Context, userID uuid.UUID, opts store.TaskListOptions) ([]*domain.Task, error) {
			gotOpts = opts
			return nil, nil
		},
	}
	handler := newTaskHandlerForTest(taskStore, nil)

	req := newAuthenticatedRequest(t, http.MethodGet, "/tasks", nil, user, nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOpts.AssignedView)
	assert.Nil(t, gotOpts.Status)
}

func TestListTasksRejectsUnknownStatus(t *testing.T) {
	user := newTestUser(t, "lister@example.com", false)
	handler := newTaskHandlerForTest(nil, nil)

	req := newAuthenticatedRequest(t, http.MethodGet, "/tasks?status_filter=ARCHIVED", nil, user, nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAddTimeAccumulates(t *testing.T) {
	user := newTestUser(t, "worker@example.com", false)
	task, err := domain.NewTask("Track me", "", user.ID, nil)
	require.NoError(t, err)
	task.TotalMinutes = 60

	taskStore := &mocks.MockTaskStore{
		AddMinutesFn: func(ctx context.Context, id, userID uuid.UUID, minutes int) (*domain.Task, error) {
			task.TotalMinutes += minutes
			return task, nil
		},
	}
	handler := newTaskHandlerForTest(taskStore, nil)

	req := newAuthenticatedRequest(t, http.MethodPatch, "/tasks/"+task.ID.String()+"/time",
		map[string]int{"minutes_to_add": 45}, user, map[string]string{"taskID": task.ID.String()})
	rec := httptest.NewRecorder()
	handler.AddTime(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TaskResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, 105, resp.TotalMinutes)
}

func TestAddTimeRejectsInvalidIncrements(t *testing.T) {
	user := newTestUser(t, "worker@example.com", false)
	taskID := uuid.New()
	handler := newTaskHandlerForTest(nil, nil)

	for _, minutes := range []int{0, -5, 1441} {
		req := newAuthenticatedRequest(t, http.MethodPatch, "/tasks/"+taskID.String()+"/time",
			map[string]int{"minutes_to_add": minutes}, user, map[string]string{"taskID": taskID.String()})
		rec := httptest.NewRecorder()
		handler.AddTime(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, "minutes_to_add=%d", minutes)
	}
}

func TestUpdateStatusNotFoundMessage(t *testing.T) {
	user := newTestUser(t, "worker@example.com", false)
	taskID := uuid.New()
	handler := newTaskHandlerForTest(&mocks.MockTaskStore{}, nil)

	req := newAuthenticatedRequest(t, http.MethodPatch, "/tasks/"+taskID.String()+"/status",
		map[string]string{"status": "DONE"}, user, map[string]string{"taskID": taskID.String()})
	rec := httptest.NewRecorder()
	handler.UpdateStatus(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", errorDetail(t, rec))
}

func TestDeleteTaskMessage(t *testing.T) {
	user := newTestUser(t, "worker@example.com", false)
	taskID := uuid.New()
	handler := newTaskHandlerForTest(&mocks.MockTaskStore{
		DeleteFn: func(ctx context.Context, id, userID uuid.UUID) error { return nil },
	}, nil)

	req := newAuthenticatedRequest(t, http.MethodDelete, "/tasks/"+taskID.String(),
		nil, user, map[string]string{"taskID": taskID.String()})
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp MessageResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, "Task successfully deleted", resp.Message)
}

func TestDeleteTaskScopedToCreator(t *testing.T) {
	user := newTestUser(t, "worker@example.com", false)
	taskID := uuid.New()
	handler := newTaskHandlerForTest(&mocks.MockTaskStore{Err: store.ErrTaskNotFound}, nil)

	req := newAuthenticatedRequest(t, http.MethodDelete, "/tasks/"+taskID.String(),
		nil, user, map[string]string{"taskID": taskID.String()})
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", errorDetail(t, rec))
}

func TestAssignClearsAssignee(t *testing.T) {
	task, err := domain.NewTask("Shared work", "", uuid.New(), nil)
	require.NoError(t, err)

	var gotAssignee *uuid.UUID = &uuid.UUID{}
	taskStore := &mocks.MockTaskStore{
		SetAssigneeFn: func(ctx context.Context, id uuid.UUID, assignee *uuid.UUID) (*domain.Task, error) {
			gotAssignee = assignee
			task.AssignedTo = assignee
			return task, nil
		},
	}
	handler := newTaskHandlerForTest(taskStore, nil)

	admin := newTestUser(t, "admin@example.com", true)
	req := newAuthenticatedRequest(t, http.MethodPatch, "/tasks/"+task.ID.String()+"/assign",
		map[string]interface{}{"assigned_to": nil}, admin, map[string]string{"taskID": task.ID.String()})
	rec := httptest.NewRecorder()
	handler.Assign(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, gotAssignee)
}

func TestAssignUnknownUser(t *testing.T) {
	admin := newTestUser(t, "admin@example.com", true)
	taskID := uuid.New()
	handler := newTaskHandlerForTest(nil, &mocks.MockUserStore{})

	req := newAuthenticatedRequest(t, http.MethodPatch, "/tasks/"+taskID.String()+"/assign",
		map[string]interface{}{"assigned_to": uuid.New()}, admin, map[string]string{"taskID": taskID.String()})
	rec := httptest.NewRecorder()
	handler.Assign(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Assigned user not found", errorDetail(t, rec))
}

func TestUpdateTaskMergesFields(t *testing.T) {
	user := newTestUser(t, "worker@example.com", false)
	task, err := domain.NewTask("Old title", "Old description", user.ID, nil)
	require.NoError(t, err)

	taskStore := &mocks.MockTaskStore{Task: task}
	handler := newTaskHandlerForTest(taskStore, nil)

	req := newAuthenticatedRequest(t, http.MethodPut, "/tasks/"+task.ID.String(),
		map[string]string{"title": "New title", "status": "IN_PROGRESS"}, user,
		map[string]string{"taskID": task.ID.String()})
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TaskResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, "New title", resp.Title)
	assert.Equal(t, "Old description", resp.Description)
	assert.Equal(t, "IN_PROGRESS", resp.Status)
}

func TestGetTaskInvalidID(t *testing.T) {
	user := newTestUser(t, "worker@example.com", false)
	handler := newTaskHandlerForTest(nil, nil)

	req := newAuthenticatedRequest(t, http.MethodGet, "/tasks/not-a-uuid",
		nil, user, map[string]string{"taskID": "not-a-uuid"})
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
