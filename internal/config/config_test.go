package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
listen: ":9090"
log_level: debug
tick_budget: 16
max_rounds: 2
redis:
  address: "localhost:6379"
  prefix: "myapp:session:"
  ttl: 1h
extractor:
  base_url: "http://localhost:1234/v1"
  model: "local-model"
  timeout: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 16, cfg.TickBudget)
	assert.Equal(t, 2, cfg.MaxRounds)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "http://localhost:1234/v1", cfg.Extractor.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Extractor.Timeout)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Empty(t, cfg.Redis.Address)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLARITA_REDIS_ADDRESS", "redis:6379")
	t.Setenv("CLARITA_LLM_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "redis:6379", cfg.Redis.Address)
	assert.Equal(t, "sk-test", cfg.Extractor.APIKey)
}
