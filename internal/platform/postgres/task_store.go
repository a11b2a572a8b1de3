package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/platform/logger"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = "id, title, description, status, total_minutes, user_id, assigned_to, created_at, updated_at"

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the creator or assignee doesn't exist
// (foreign key violation).
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, title, description, status, total_minutes, user_id, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		nullableString(task.Description),
		task.Status,
		task.TotalMinutes,
		task.UserID,
		task.AssignedTo,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: referenced user not found", store.ErrInvalidEntity)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return err
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)
	return s.getOne(ctx, query, id)
}

// GetVisible implements store.TaskStore.GetVisible
// The row must be created by or assigned to userID.
func (s *PostgresTaskStore) GetVisible(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE id = $1 AND (user_id = $2 OR assigned_to = $2)",
		taskColumns,
	)
	return s.getOne(ctx, query, id, userID)
}

// GetForCreator implements store.TaskStore.GetForCreator
func (s *PostgresTaskStore) GetForCreator(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE id = $1 AND user_id = $2",
		taskColumns,
	)
	return s.getOne(ctx, query, id, userID)
}

func (s *PostgresTaskStore) getOne(ctx context.Context, query string, args ...any) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task", slog.String("error", err.Error()))
		return nil, err
	}
	return task, nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context, userID uuid.UUID, opts store.TaskListOptions) ([]*domain.Task, error) {
	var query string
	args := []any{userID}

	if opts.AssignedView {
		// Assigned to me, or created by me and not yet delegated.
		query = fmt.Sprintf(
			"SELECT %s FROM tasks WHERE (assigned_to = $1 OR (user_id = $1 AND assigned_to IS NULL))",
			taskColumns,
		)
	} else {
		query = fmt.Sprintf("SELECT %s FROM tasks WHERE user_id = $1", taskColumns)
	}

	if opts.Status != nil {
		args = append(args, *opts.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	return s.queryTasks(ctx, query, args...)
}

// ListAll implements store.TaskStore.ListAll
func (s *PostgresTaskStore) ListAll(ctx context.Context) ([]*domain.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks ORDER BY created_at DESC", taskColumns)
	return s.queryTasks(ctx, query)
}

// ListActiveForUser implements store.TaskStore.ListActiveForUser
func (s *PostgresTaskStore) ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM tasks WHERE user_id = $1 AND status IN ($2, $3) ORDER BY created_at DESC",
		taskColumns,
	)
	return s.queryTasks(ctx, query, userID, domain.TaskStatusTodo, domain.TaskStatusInProgress)
}

func (s *PostgresTaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
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

// Update implements store.TaskStore.Update
// The WHERE clause keeps the write scoped to the creator recorded on the
// task, so an out-of-scope row surfaces as not found.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	task.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, total_minutes = $4, assigned_to = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		nullableString(task.Description),
		task.Status,
		task.TotalMinutes,
		task.AssignedTo,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referenced user not found", store.ErrInvalidEntity)
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	return s.requireRowAffected(result, task.ID, log, "update")
}

// UpdateStatus implements store.TaskStore.UpdateStatus
func (s *PostgresTaskStore) UpdateStatus(
	ctx context.Context,
	id, userID uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	query := fmt.Sprintf(`
		UPDATE tasks
		SET status = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING %s
	`, taskColumns)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, status, time.Now().UTC(), id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task status",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	log.Info("task status updated",
		slog.String("task_id", id.String()),
		slog.String("status", string(status)))
	return task, nil
}

// AddMinutes implements store.TaskStore.AddMinutes
// The increment happens in SQL, so concurrent calls accumulate instead of
// overwriting each other.
func (s *PostgresTaskStore) AddMinutes(
	ctx context.Context,
	id, userID uuid.UUID,
	minutes int,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateTimeIncrement(minutes); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE tasks
		SET total_minutes = total_minutes + $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING %s
	`, taskColumns)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, minutes, time.Now().UTC(), id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to add minutes to task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	log.Info("task time logged",
		slog.String("task_id", id.String()),
		slog.Int("minutes_added", minutes),
		slog.Int("total_minutes", task.TotalMinutes))
	return task, nil
}

// SetAssignee implements store.TaskStore.SetAssignee
func (s *PostgresTaskStore) SetAssignee(
	ctx context.Context,
	id uuid.UUID,
	assignee *uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`
		UPDATE tasks
		SET assigned_to = $1, updated_at = $2
		WHERE id = $3
		RETURNING %s
	`, taskColumns)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, assignee, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: assigned user not found", store.ErrInvalidEntity)
		}
		log.Error("failed to set task assignee",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	return task, nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		"DELETE FROM tasks WHERE id = $1 AND user_id = $2",
		id,
		userID,
	)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	return s.requireRowAffected(result, id, log, "delete")
}

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresTaskStore) requireRowAffected(
	result sql.Result,
	id uuid.UUID,
	log *slog.Logger,
	op string,
) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("task not found for "+op, slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}
	return nil
}

// scanTask reads one task row in taskColumns order.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var description sql.NullString
	var status string
	var assignedTo uuid.NullUUID

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&status,
		&task.TotalMinutes,
		&task.UserID,
		&assignedTo,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.Status = domain.TaskStatus(status)
	if assignedTo.Valid {
		id := assignedTo.UUID
		task.AssignedTo = &id
	}
	return &task, nil
}

// nullableString maps an empty string to SQL NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
