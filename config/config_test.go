package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memsift/memsift/session"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memsift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: openai
    model: gpt-4o-mini
    api_key: sk-test
    enabled: true
    temperature: 0.1
    max_tokens: 200
    priority: 1
  - name: anthropic
    model: claude-3-5-haiku
    enabled: true
    priority: 2
session:
  max_context_tokens: 5000
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Providers, 2)
	assert.Equal(t, "openai", cfg.Providers[0].Name)
	assert.Equal(t, "sk-test", cfg.Providers[0].APIKey)
	assert.Equal(t, float32(0.1), cfg.Providers[0].Temperature)
	assert.Equal(t, 200, cfg.Providers[0].MaxTokens)
	assert.Equal(t, 5000, cfg.Session.MaxContextTokens)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel())
}

func TestLoadFillsCredentialFromEnv(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-from-env")
	path := writeConfig(t, `
providers:
  - name: anthropic
    model: claude-3-5-haiku
    enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.Providers[0].APIKey)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
providers: []
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, session.DefaultMaxContextTokens, cfg.Session.MaxContextTokens)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel())
	assert.Empty(t, cfg.Providers)
}

func TestLoadMissingFileIsNotFatal(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Providers)
}

func TestValidate(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: openai
    enabled: true
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model is required")
}

func TestValidateMissingName(t *testing.T) {
	path := writeConfig(t, `
providers:
  - model: gpt-4o-mini
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")
}
