package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 0.7, cfg.Completion.Temperature)
	assert.Equal(t, 1.0, cfg.Completion.TopP)
	assert.Equal(t, 1024, cfg.Completion.MaxTokens)
	assert.Equal(t, 5, cfg.Assistant.MaxToolDepth)
	assert.Equal(t, 2, cfg.Assistant.MaxAttempts)
	assert.Equal(t, 8740, cfg.Gateway.Port)
}

func TestLoadMergesSparseFile(t *testing.T) {
	path := writeConfig(t, `
completion:
  endpoint: https://llm.example.com/v1/chat/completions
  model: open-coach-7b
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://llm.example.com/v1/chat/completions", cfg.Completion.Endpoint)
	assert.Equal(t, "open-coach-7b", cfg.Completion.Model)
	// Defaults backfill values the file omitted.
	assert.Equal(t, 1024, cfg.Completion.MaxTokens)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadExpandsCredentialEnvVars(t *testing.T) {
	t.Setenv("TEST_WS_KEY", "sk-secret")
	path := writeConfig(t, `
completion:
  apiKey: ${TEST_WS_KEY}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-secret", cfg.Completion.APIKey)
}

func TestLoadLeavesUnsetEnvVarsAlone(t *testing.T) {
	path := writeConfig(t, `
completion:
  apiKey: ${DEFINITELY_NOT_SET_VAR_12345}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${DEFINITELY_NOT_SET_VAR_12345}", cfg.Completion.APIKey)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	t.Setenv("WELLSPRING_MODEL", "env-model")
	path := writeConfig(t, `
completion:
  model: file-model
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-model", cfg.Completion.Model)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "completion: [not a map")

	_, err := Load(path)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestValidateCatchesBadValues(t *testing.T) {
	cfg := Defaults()
	cfg.Completion.Temperature = 3.5
	cfg.Gateway.Port = 0
	cfg.Gateway.Bind = "everywhere"

	errs := Validate(cfg)
	assert.Len(t, errs, 3)
}

func TestValidateAcceptsDefaults(t *testing.T) {
	assert.Empty(t, Validate(Defaults()))
}

func TestResolveDBPath(t *testing.T) {
	cfg := Defaults()
	cfg.Store.Path = "/tmp/custom.db"
	assert.Equal(t, "/tmp/custom.db", ResolveDBPath(cfg))

	cfg.Store.Path = ""
	assert.Contains(t, ResolveDBPath(cfg), "wellspring.db")
}
