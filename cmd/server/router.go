package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shrhawk/sprintsync-api/internal/api"
	apiMiddleware "github.com/shrhawk/sprintsync-api/internal/api/middleware"
	"github.com/shrhawk/sprintsync-api/internal/api/shared"
)

const serviceVersion = "1.0.0"

// setupRouter creates the application router with all routes and middleware
// registered under the configured API prefix.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOriginList(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	validate := api.NewValidator()

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordHasher,
		app.tokenLifetime,
		validate,
		app.logger,
	)
	userHandler := api.NewUserHandler(app.userStore, app.passwordHasher, validate, app.logger)
	taskHandler := api.NewTaskHandler(app.taskStore, app.userStore, validate, app.logger)
	aiHandler := api.NewAIHandler(app.aiService, app.taskStore, validate, app.logger)
	statsHandler := api.NewStatsHandler(app.statsStore, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	r.Route(app.config.Server.APIPrefix, func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)
			r.Post("/auth/refresh", authHandler.Refresh)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.GetMe)
				r.Put("/me", userHandler.UpdateMe)

				r.Group(func(r chi.Router) {
					r.Use(apiMiddleware.RequireAdmin)
					r.Get("/", userHandler.List)
					r.Post("/", userHandler.Create)
					r.Get("/{userID}", userHandler.Get)
					r.Put("/{userID}", userHandler.Update)
					r.Delete("/{userID}", userHandler.Delete)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)
				r.Get("/{taskID}", taskHandler.Get)
				r.Put("/{taskID}", taskHandler.Update)
				r.Patch("/{taskID}/status", taskHandler.UpdateStatus)
				r.Patch("/{taskID}/time", taskHandler.AddTime)
				r.Delete("/{taskID}", taskHandler.Delete)

				r.Group(func(r chi.Router) {
					r.Use(apiMiddleware.RequireAdmin)
					r.Patch("/{taskID}/assign", taskHandler.Assign)
					r.Get("/admin/all", taskHandler.ListAll)
				})
			})

			r.Route("/ai", func(r chi.Router) {
				r.Post("/suggest-description", aiHandler.SuggestDescription)
				r.Get("/daily-plan", aiHandler.DailyPlan)
			})

			r.Route("/stats", func(r chi.Router) {
				r.Get("/user-summary", statsHandler.UserSummary)
				r.Get("/recent-activity", statsHandler.RecentActivity)

				r.Group(func(r chi.Router) {
					r.Use(apiMiddleware.RequireAdmin)
					r.Get("/top-users", statsHandler.TopUsers)
				})
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, http.StatusOK, api.HealthResponse{
			Status:  "healthy",
			Service: "SprintSync API",
			Version: serviceVersion,
		})
	})

	return r
}
