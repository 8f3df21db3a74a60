package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DB_PATH", "PORT", "APP_ENV", "LOG_LEVEL", "SETTINGS_NAMESPACE", "DEFAULT_CURRENCY", "DEFAULT_BASE_RATE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "./dev.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.SettingsNamespace)
	assert.Zero(t, cfg.DefaultBaseRate)
	assert.True(t, cfg.IsDev())
}

func TestLoad_ReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")

	path := filepath.Join(t.TempDir(), ".env")
	content := []byte(`
# comment
DB_PATH=/tmp/hustleflow.db
PORT=1234
export APP_ENV=Production
DEFAULT_CURRENCY="eur"
DEFAULT_BASE_RATE=65.5
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	cfg := load(path)

	assert.Equal(t, "/tmp/hustleflow.db", cfg.DBPath)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
	assert.Equal(t, 65.5, cfg.DefaultBaseRate)
	assert.False(t, cfg.IsDev())
}

func TestLoad_IgnoresInvalidBaseRate(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_BASE_RATE", "-3")

	cfg := load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Zero(t, cfg.DefaultBaseRate)
}
