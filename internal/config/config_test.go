package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	barerrors "github.com/ytget/prodbar/internal/errors"
)

// isolate keeps the developer's own config out of the test
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.RefreshInterval)
	assert.Equal(t, BackendPreferences, cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.Storage.Dir)
	assert.Equal(t, float32(12), cfg.Window.Padding)
	assert.Equal(t, float32(500), cfg.Window.MinWidth)
	assert.Equal(t, float32(70), cfg.Window.MinHeight)
	assert.Equal(t, float32(1400), cfg.Window.MaxWidth)
	assert.Equal(t, LogFormatText, cfg.Log.Format)
	assert.Equal(t, "system", cfg.Language)
}

func TestLoad_LocalFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, LocalConfigFile), `
refresh_interval: 5s
language: RU
storage:
  backend: disk
  dir: ~/bar-state
window:
  max_width: 900
log:
  format: json
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.RefreshInterval)
	assert.Equal(t, BackendDisk, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(dir, "bar-state"), cfg.Storage.Dir)
	assert.Equal(t, float32(900), cfg.Window.MaxWidth)
	assert.Equal(t, float32(500), cfg.Window.MinWidth, "unset keys keep defaults")
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
	assert.Equal(t, "ru", cfg.Language)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("PRODBAR_STORAGE_BACKEND", "disk")
	t.Setenv("PRODBAR_REFRESH_INTERVAL", "10s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendDisk, cfg.Storage.Backend)
	assert.Equal(t, 10*time.Second, cfg.RefreshInterval)
}

func TestLoad_ExplicitMissing(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.True(t, barerrors.IsCode(err, barerrors.ErrConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeConfig(t, path, "storage: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, barerrors.IsCode(err, barerrors.ErrConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"interval too short", func(c *Config) { c.RefreshInterval = 100 * time.Millisecond }},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "sqlite" }},
		{"negative padding", func(c *Config) { c.Window.Padding = -1 }},
		{"max below min", func(c *Config) { c.Window.MaxWidth = 100 }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	require.NoError(t, DefaultConfig().Validate())
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, barerrors.IsCode(err, barerrors.ErrConfig))
		})
	}
}
