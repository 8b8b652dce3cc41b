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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	t.Setenv("SERPER_API_KEY", "")
	path := writeConfig(t, "app:\n  name: search-adapter\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "search-adapter", cfg.App.Name)
	assert.Equal(t, ProviderSerper, cfg.Search.Provider)
	assert.Equal(t, DefaultSearchBaseURL, cfg.Search.BaseURL)
	assert.Equal(t, DefaultSearchTimeout, cfg.Search.Timeout)
	assert.Equal(t, DefaultMaxResults, cfg.Search.MaxResults)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "search-adapter", cfg.Observability.ServiceName)
	assert.Empty(t, cfg.Search.APIKey)
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	t.Setenv("SERPER_API_KEY", "env-key")
	t.Setenv("LOG_LEVEL", "debug")
	path := writeConfig(t, `
search:
  provider: Static
  timeout: 2500
logging:
  format: console
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Search.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ProviderStatic, cfg.Search.Provider)
	assert.Equal(t, 2500*time.Millisecond, GetDuration(cfg.Search.Timeout))
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("SEARCH_SECRET", "arn:aws:secretsmanager:eu-west-1:123:secret:serper")
	path := writeConfig(t, `
search:
  api_key_secret_id: ${SEARCH_SECRET}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:secretsmanager:eu-west-1:123:secret:serper", cfg.Search.APIKeySecretID)
}

func TestLoadFromFile_RejectsUnknownProvider(t *testing.T) {
	path := writeConfig(t, "search:\n  provider: bing\n")

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.provider")
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetWorkerConfig(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"search-web": {Enabled: false, MaxJobsActive: 2, Timeout: 1000},
	}}

	assert.False(t, IsWorkerEnabled(cfg, "search-web"))
	assert.Equal(t, 2, GetWorkerConfig(cfg, "search-web").MaxJobsActive)

	fallback := GetWorkerConfig(cfg, "unknown")
	assert.True(t, fallback.Enabled)
	assert.Equal(t, 5, fallback.MaxJobsActive)
}

func TestApplyDefaults_Workers(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{"search-web": {Enabled: true}}}
	applyDefaults(cfg)

	w := cfg.Workers["search-web"]
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 30000, w.Timeout)
}
