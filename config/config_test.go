package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vulnview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
host: 127.0.0.1
port: "9090"
dataset_source: https://example.com/scan.json
fetch_timeout: 30s
debounce_interval: 150ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://example.com/scan.json", cfg.DatasetSource)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 150*time.Millisecond, cfg.DebounceInterval)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VULNVIEW_DATASET", "testdata/scan.json")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 60*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 15*time.Minute, cfg.RedisTTL)
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceInterval)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
dataset_source: file-from-yaml.json
`)
	t.Setenv("VULNVIEW_PORT", "7070")
	t.Setenv("VULNVIEW_DATASET", "file-from-env.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "file-from-env.json", cfg.DatasetSource)
}

func TestLoadRejectsMissingDataset(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestLoadRejectsBadPort(t *testing.T) {
	path := writeConfig(t, `
port: not-a-port
dataset_source: scan.json
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, `
port: "8080"
dataset_source: scan.json
fetch_timeout: sometime
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "fetch_timeout")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "port: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to parse config file")
}
