package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultInferenceURL, cfg.Inference.BaseURL)
	assert.Equal(t, DefaultInferenceTimeout, cfg.Inference.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultSaveDir(), cfg.Reports.SaveDir)
	assert.EqualValues(t, DefaultWindowWidth, cfg.Window.Width)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
inference:
  base_url: http://inference.local:9000/
  timeout: 15s
reports:
  save_dir: /srv/reports
log:
  level: debug
window:
  width: 1024
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://inference.local:9000", cfg.Inference.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Inference.Timeout)
	assert.Equal(t, "/srv/reports", cfg.Reports.SaveDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.EqualValues(t, 1024, cfg.Window.Width)
	assert.EqualValues(t, DefaultWindowHeight, cfg.Window.Height)
}

func TestLoad_RejectsBadURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("inference:\n  base_url: localhost:8000\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "inference.base_url")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("inference: [unclosed"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "/etc/pathoscope.yaml")
	assert.Equal(t, "/etc/pathoscope.yaml", Path())

	t.Setenv(EnvPath, "")
	assert.Equal(t, "config.yaml", Path())
}

func TestDefaultSaveDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	assert.Equal(t, filepath.Join(home, "Desktop"), DefaultSaveDir())
}
