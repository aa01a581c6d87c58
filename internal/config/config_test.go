package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/inventory.db", cfg.Database.Path)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr)
	assert.Equal(t, "reports", cfg.Reports.Dir)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.Enabled())
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STOCKROOM_DATABASE_PATH", "/tmp/other.db")
	t.Setenv("STOCKROOM_LOG_LEVEL", "DEBUG")
	t.Setenv("STOCKROOM_REPORTS_DIR", "out")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "out", cfg.Reports.Dir)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestLoadRejectsBadDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STOCKROOM_DATABASE_DRIVER", "mysql")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestLoadRequiresSecretWithPassword(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STOCKROOM_AUTH_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")

	_, err := Load()
	assert.ErrorContains(t, err, "jwt_secret")
}

func TestLoadRejectsZeroRate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STOCKROOM_RATE_LIMIT_RPS", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "rate_limit.rps")
}
