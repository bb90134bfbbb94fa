package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Nil(t, cfg)

	t.Chdir(t.TempDir())
	cfg, err = Load("")
	require.NoError(t, err)

	assert.Equal(t, "Store API", cfg.App.Name)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "mock", cfg.Database.Type)
	assert.Equal(t, 3, cfg.Database.Retry.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Database.SlowQuery)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "hello@store.io", cfg.Mail.From)
	assert.Equal(t, 100, cfg.Worker.BatchSize)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: production
database:
  type: sqlite
  path: /tmp/store.db
mail:
  from: noreply@example.com
`), 0o600))
	t.Setenv("STORE_SERVER_PORT", "9090")
	t.Setenv("STORE_REDIS_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/tmp/store.db", cfg.Database.Path)
	assert.Equal(t, "noreply@example.com", cfg.Mail.From)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
}
