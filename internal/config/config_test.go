package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulzo/prompt-optimizer-api/internal/config"
)

func loadFromYAML(t *testing.T, content string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	return cfg
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := loadFromYAML(t, "server:\n  env: test\n")

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Batch.FailFast)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "bedrock", cfg.Optimizer.Type)
	assert.Equal(t, "us-east-1", cfg.Optimizer.Region)
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)

	// The Nova matrix is the built-in target table.
	assert.Len(t, cfg.Targets.Supported, 4)
	require.Len(t, cfg.Targets.Redirects, 1)
	assert.Equal(t, "amazon.nova-2-lite-v1:0", cfg.Targets.Redirects[0].ID)
	assert.Equal(t, "amazon.nova-lite-v1:0", cfg.Targets.Redirects[0].Substitute)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	cfg := loadFromYAML(t, `
server:
  port: "9090"
batch:
  fail_fast: true
optimizer:
  type: mock
targets:
  supported: ["model-a"]
  redirects:
    - id: model-b
      substitute: model-a
      reason: retired
`)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Batch.FailFast)
	assert.Equal(t, "mock", cfg.Optimizer.Type)
	assert.Equal(t, []string{"model-a"}, cfg.Targets.Supported)
}

func TestLoadConfig_ResolvesSecretsFromEnv(t *testing.T) {
	t.Setenv("REDIS_SECRET", "s3cret")
	cfg := loadFromYAML(t, `
redis:
  enabled: true
  addr: localhost:6379
  password: "ENV:REDIS_SECRET"
`)

	assert.Equal(t, "s3cret", cfg.Redis.Password)
}

func TestTargetTable_FromConfig(t *testing.T) {
	cfg := loadFromYAML(t, "server:\n  env: test\n")

	table, err := cfg.TargetTable()
	require.NoError(t, err)

	effective, rule, err := table.Resolve("amazon.nova-2-lite-v1:0")
	require.NoError(t, err)
	assert.Equal(t, "amazon.nova-lite-v1:0", effective)
	require.NotNil(t, rule)
	assert.Contains(t, rule.Reason, "Nova Lite")
}

func TestTargetTable_InvalidRedirect(t *testing.T) {
	cfg := loadFromYAML(t, `
targets:
  supported: ["model-a"]
  redirects:
    - id: model-b
      substitute: model-missing
`)

	_, err := cfg.TargetTable()
	assert.Error(t, err)
}
