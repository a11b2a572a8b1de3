// Package generation defines the interface between the application and an
// external completion API used for task-description suggestions and daily
// planning. Implementations live under internal/platform; callers must
// treat every error as recoverable and substitute local fallback content.
package generation
