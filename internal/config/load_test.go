package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "config-test-secret-32-chars-long!!!"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SPRINTSYNC_DATABASE_URL", "postgres://localhost:5432/sprintsync_test")
	t.Setenv("SPRINTSYNC_AUTH_JWT_SECRET", testJWTSecret)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "/api/v1", cfg.Server.APIPrefix)
	assert.Equal(t, 60*24, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.ModelName)
	assert.Empty(t, cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "admin@sprintsync.com", cfg.Seed.AdminEmail)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SPRINTSYNC_SERVER_PORT", "9090")
	t.Setenv("SPRINTSYNC_SERVER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("SPRINTSYNC_DATABASE_URL", "")
	t.Setenv("SPRINTSYNC_AUTH_JWT_SECRET", testJWTSecret)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsShortJWTSecret(t *testing.T) {
	t.Setenv("SPRINTSYNC_DATABASE_URL", "postgres://localhost:5432/sprintsync_test")
	t.Setenv("SPRINTSYNC_AUTH_JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SPRINTSYNC_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}

func TestAllowedOriginList(t *testing.T) {
	cfg := ServerConfig{AllowedOrigins: "http://localhost:3000, http://localhost:8000 ,,"}
	assert.Equal(t,
		[]string{"http://localhost:3000", "http://localhost:8000"},
		cfg.AllowedOriginList())
}
