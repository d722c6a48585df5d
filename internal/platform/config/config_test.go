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

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no stray .env

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsProduction)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "₦", cfg.CurrencySymbol)
	assert.Equal(t, "50", cfg.DepositSurcharge.String())
	assert.Equal(t, 12*time.Hour, cfg.SessionIdleTimeout)
	assert.Equal(t, 10*time.Minute, cfg.SessionSweepInterval)
	assert.Equal(t, "300-M", cfg.RateLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Empty(t, cfg.PDFFontPath)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEPOSIT_SURCHARGE", "75.5")
	t.Setenv("SESSION_IDLE_TIMEOUT", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, http://b.local")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "75.5", cfg.DepositSurcharge.String())
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_SWEEP_INTERVAL", "soon")
	t.Setenv("LOG_LEVEL", "chatty")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.SessionSweepInterval)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)

	t.Setenv("DEPOSIT_SURCHARGE", "-5")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "posync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PORT: \"7070\"\nCURRENCY_SYMBOL: \"NGN \"\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "NGN ", cfg.CurrencySymbol)

	t.Setenv("CONFIG_FILE", filepath.Join(dir, "missing.yaml"))
	_, err = LoadConfig()
	assert.Error(t, err)
}

// chdir switches the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
