package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shrhawk/sprintsync-api/internal/domain"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

type seedTask struct {
	title        string
	description  string
	status       domain.TaskStatus
	totalMinutes int
}

var adminSeedTasks = []seedTask{
	{
		title:        "Set up CI/CD pipeline",
		description:  "Configure automated testing and deployment pipeline for the SprintSync project. Include unit tests, integration tests, and automated deployment to staging and production environments.",
		status:       domain.TaskStatusInProgress,
		totalMinutes: 120,
	},
	{
		title:       "Review Q4 team performance",
		description: "Conduct quarterly performance reviews for all team members. Prepare feedback, set goals for next quarter, and schedule one-on-one meetings.",
		status:      domain.TaskStatusTodo,
	},
	{
		title:        "Update project documentation",
		description:  "Review and update all project documentation including API docs, deployment guides, and team onboarding materials.",
		status:       domain.TaskStatusDone,
		totalMinutes: 180,
	},
}

var demoSeedTasks = []seedTask{
	{
		title:        "Implement user authentication",
		description:  "Build JWT-based authentication system with login, logout, and token refresh functionality. Include password hashing and security best practices.",
		status:       domain.TaskStatusDone,
		totalMinutes: 240,
	},
	{
		title:        "Design task management UI",
		description:  "Create responsive React components for task listing, creation, and editing. Focus on clean UX and mobile-friendly design.",
		status:       domain.TaskStatusInProgress,
		totalMinutes: 90,
	},
	{
		title:       "Integrate completion API",
		description: "Implement AI-powered task suggestions and daily planning features using an external completion API.",
		status:      domain.TaskStatusTodo,
	},
	{
		title:       "Write unit tests",
		description: "Create comprehensive unit tests for all API endpoints and core business logic. Achieve minimum 80% code coverage.",
		status:      domain.TaskStatusTodo,
	},
	{
		title:        "Optimize database queries",
		description:  "Review and optimize slow database queries. Add proper indexes and implement query result caching where appropriate.",
		status:       domain.TaskStatusDone,
		totalMinutes: 75,
	},
}

// seedUsers creates the bootstrap admin and demo accounts with a set of
// sample tasks. Existing accounts are left untouched, so re-running the
// seed is safe.
func (app *application) seedUsers(ctx context.Context) error {
	cfg := app.config.Seed

	return store.RunInTransaction(ctx, app.db, func(ctx context.Context, tx *sql.Tx) error {
		userStore := app.userStore.WithTx(tx)
		taskStore := app.taskStore.WithTx(tx)

		if err := app.seedUser(ctx, userStore, taskStore, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminFullName, true, adminSeedTasks); err != nil {
			return err
		}
		return app.seedUser(ctx, userStore, taskStore, cfg.DemoEmail, cfg.DemoPassword, cfg.DemoFullName, false, demoSeedTasks)
	})
}

func (app *application) seedUser(
	ctx context.Context,
	userStore store.UserStore,
	taskStore store.TaskStore,
	email, password, fullName string,
	isAdmin bool,
	tasks []seedTask,
) error {
	if _, err := userStore.GetByEmail(ctx, email); err == nil {
		app.logger.Info("Seed user already exists", slog.String("email", email))
		return nil
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("failed to look up seed user %s: %w", email, err)
	}

	user, err := domain.NewUser(email, fullName, password)
	if err != nil {
		return fmt.Errorf("invalid seed user %s: %w", email, err)
	}
	user.IsAdmin = isAdmin

	hash, err := app.passwordHasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	user.PasswordHash = hash

	if err := userStore.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create seed user %s: %w", email, err)
	}

	for _, st := range tasks {
		task, err := domain.NewTask(st.title, st.description, user.ID, nil)
		if err != nil {
			return fmt.Errorf("invalid seed task %q: %w", st.title, err)
		}
		task.Status = st.status
		task.TotalMinutes = st.totalMinutes

		if err := taskStore.Create(ctx, task); err != nil {
			return fmt.Errorf("failed to create seed task %q: %w", st.title, err)
		}
	}

	app.logger.Info("Seed user created",
		slog.String("email", email),
		slog.Bool("is_admin", isAdmin),
		slog.Int("tasks", len(tasks)))
	return nil
}
