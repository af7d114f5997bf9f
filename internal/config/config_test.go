package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URL", "KNOWLEDGE_BASE_PATH", "REDIS_URL", "AMQP_URL", "AMQP_EXCHANGE",
		"EXPORT_S3_BUCKET", "EXPORT_S3_REGION", "EXPORT_S3_PREFIX", "EXPORT_S3_ENDPOINT",
		"LOG_LEVEL", "PORT", "QUIZ_SESSION_TTL_MINUTES", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"database_url": "postgres://localhost/dw",
		"port": 9000,
		"cors_allowed_origins": ["https://a.example"],
		"redis_url": "redis://localhost:6379/0"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/dw", cfg.DatabaseURL)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"https://a.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig("/nonexistent/path/config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	_, err = LoadConfig(writeConfig(t, `{ invalid json }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadServiceConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadServiceConfig("")
	require.NoError(t, err)
	assert.Equal(t, "directionwise.db", cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, time.Hour, cfg.QuizSessionTTL())
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadServiceConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `{"port": 9000, "database_url": "file.db", "log_level": "debug"}`)
	t.Setenv("PORT", "9100")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadServiceConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "file.db", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadServiceConfig_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")
	_, err := LoadServiceConfig("")
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("QUIZ_SESSION_TTL_MINUTES", "soon")
	_, err = LoadServiceConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())

	bad := Defaults()
	bad.Port = 70000
	assert.Error(t, bad.Validate())

	bad = Defaults()
	bad.LogLevel = "loud"
	assert.Error(t, bad.Validate())

	bad = Defaults()
	bad.KnowledgeBasePath = "/nonexistent/kb.json"
	assert.Error(t, bad.Validate())
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	level, err = ParseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}
