package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"planning-bot/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"BACKEND_MODE", "API_BASE_URL", "API_TIMEOUT", "LOG_LEVEL", "WEEK_STARTS_ON", "API_RATE_LIMIT", "TELEGRAM_DEBUG"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendAPI, cfg.BackendMode)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, int64(10), cfg.APIRateLimit)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, time.Monday, cfg.WeekStartsOn)
	assert.False(t, cfg.TelegramDebug)
	assert.False(t, cfg.HasCredentials())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BACKEND_MODE", "local")
	t.Setenv("DATABASE_URL", "/tmp/plan.db")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WEEK_STARTS_ON", "Sunday")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("API_EMAIL", "boss@example.com")
	t.Setenv("API_PASSWORD", "secret")
	t.Setenv("TELEGRAM_DEBUG", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendLocal, cfg.BackendMode)
	assert.Equal(t, "/tmp/plan.db", cfg.DatabaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, time.Sunday, cfg.WeekStartsOn)
	assert.Equal(t, int64(2), cfg.RedisDB)
	assert.True(t, cfg.TelegramDebug)
	assert.True(t, cfg.HasCredentials())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"backend mode", "BACKEND_MODE", "ftp"},
		{"log level", "LOG_LEVEL", "loud"},
		{"weekday", "WEEK_STARTS_ON", "someday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("SICK_LABEL", "Больничный")
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `
positions: [Bar, Cuisine, Salle]
absence_labels:
  sick: ${SICK_LABEL}
  vacation: Congé
confirm_delete: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bar", "Cuisine", "Salle"}, s.Positions)
	assert.Equal(t, "Больничный", s.Labels()[models.ShiftSick])
	assert.Equal(t, "Congé", s.Labels()[models.ShiftVacation])
	assert.False(t, s.ShouldConfirmDelete())
}

func TestLoadSettingsEmptyPath(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Empty(t, s.Labels())
	assert.True(t, s.ShouldConfirmDelete())
}

func TestLoadSettingsRejectsWorkLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("absence_labels:\n  work: Смена\n"), 0o600))

	_, err := LoadSettings(path)
	assert.Error(t, err)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("FLAG", "true")
	t.Setenv("BAD_INT", "x")
	assert.True(t, getEnvAsBool("FLAG", false))
	assert.Equal(t, int64(5), getEnvAsInt("BAD_INT", 5))
	assert.Equal(t, time.Minute, getEnvAsDuration("MISSING_DURATION", time.Minute))
}
