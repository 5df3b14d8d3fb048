package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7227, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "sqlite", cfg.Storage.StorageEngine)
	assert.Equal(t, "./data", cfg.Storage.DataPath)
	assert.Equal(t, "development", cfg.Security.SecurityMode)
	assert.True(t, cfg.Analysis.AllowRemoteSources)
	assert.True(t, cfg.Analysis.PersistReports)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GLOSSA_PORT", "9090")
	t.Setenv("GLOSSA_STORAGE_ENGINE", "postgres")
	t.Setenv("GLOSSA_POSTGRES_DSN", "postgres://localhost/glossa")
	t.Setenv("GLOSSA_ALLOW_REMOTE_SOURCES", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.StorageEngine)
	assert.Equal(t, "postgres://localhost/glossa", cfg.Storage.PostgresDSN)
	assert.False(t, cfg.Analysis.AllowRemoteSources)
}

func TestLoadConfig_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("GLOSSA_PORT", "not-a-port")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7227, cfg.Server.Port)
}

func TestLoadConfigFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossa.yaml")
	content := `
server:
  port: 8000
storage:
  storage_engine: postgres
  postgres_dsn: postgres://db/glossa
security:
  security_mode: production
  api_token: secret
analysis:
  persist_reports: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "postgres", cfg.Storage.StorageEngine)
	assert.Equal(t, "production", cfg.Security.SecurityMode)
	assert.Equal(t, "secret", cfg.Security.APIToken)
	assert.False(t, cfg.Analysis.PersistReports)
}

func TestLoadConfigFile_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossa.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8000\n"), 0o644))
	t.Setenv("GLOSSA_PORT", "9001")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
}

func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfigFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossa.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))

	_, err := LoadConfigFile(path)
	require.Error(t, err)
}
