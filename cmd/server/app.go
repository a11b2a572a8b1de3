package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/shrhawk/sprintsync-api/internal/config"
	"github.com/shrhawk/sprintsync-api/internal/generation"
	"github.com/shrhawk/sprintsync-api/internal/platform/gemini"
	"github.com/shrhawk/sprintsync-api/internal/platform/postgres"
	"github.com/shrhawk/sprintsync-api/internal/service/ai"
	"github.com/shrhawk/sprintsync-api/internal/service/auth"
	"github.com/shrhawk/sprintsync-api/internal/store"
)

// application holds the shared application dependencies to simplify wiring
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore  store.UserStore
	taskStore  store.TaskStore
	statsStore store.StatsStore

	jwtService     auth.JWTService
	passwordHasher *auth.BcryptHasher
	aiService      *ai.Service

	tokenLifetime time.Duration
}

// newApplication creates an application instance with all dependencies
// initialized. It accepts the core dependencies that must be established
// before wiring: configuration, logger, and database connection.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:        cfg,
		logger:        logger,
		db:            db,
		tokenLifetime: time.Duration(cfg.Auth.TokenLifetimeMinutes) * time.Minute,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.passwordHasher = auth.NewBcryptHasher(0)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.statsStore = postgres.NewPostgresStatsStore(db, logger)

	// The completion API is optional: without a key the AI service serves
	// deterministic fallbacks only.
	var generator generation.Generator
	if cfg.LLM.GeminiAPIKey != "" {
		geminiGenerator, err := gemini.NewGenerator(
			ctx,
			logger.With(slog.String("component", "llm_generator")),
			cfg.LLM,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
		}
		generator = geminiGenerator
		logger.Info("LLM generator initialized", slog.String("model", cfg.LLM.ModelName))
	}
	app.aiService = ai.NewService(generator, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("Application shutdown completed")
}
