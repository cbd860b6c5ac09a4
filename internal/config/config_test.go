package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET", "REDDIT_USERNAME",
		"REDDIT_PASSWORD", "REDDIT_USER_AGENT", "LLM_PROVIDER", "LLM_MODEL",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Reddit.ClientID = "cid"
	cfg.Reddit.ClientSecret = "secret"
	cfg.Reddit.Username = "gopher_tester"
	cfg.Reddit.Password = "hunter2"
	cfg.LLM.APIKey = "sk-test"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 1000, cfg.LLM.MaxTokens)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, 25, cfg.Limits.Posts)
	assert.Equal(t, 25, cfg.Limits.Comments)
	assert.Equal(t, 50, cfg.Limits.Saved)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := validConfig()
	cfg.LLM.Provider = "anthropic"
	cfg.Limits.Posts = 10
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", loaded.LLM.Provider)
	assert.Equal(t, 10, loaded.Limits.Posts)
	assert.Equal(t, "gopher_tester", loaded.Reddit.Username)
}

func TestConfig_SecretsNeverPersisted(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := validConfig()
	require.NoError(t, cfg.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.NotContains(t, content, "secret")
	assert.NotContains(t, content, "hunter2")
	assert.NotContains(t, content, "sk-test")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.Reddit.Password)
	assert.Empty(t, loaded.LLM.APIKey)
}

func TestConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDDIT_CLIENT_ID", "env-cid")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "env-gemini-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-cid", cfg.Reddit.ClientID)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "env-gemini-key", cfg.LLM.APIKey)
}

func TestConfig_ProviderKeyMatching(t *testing.T) {
	clearEnv(t)
	// Only the active provider's key env should be consulted.
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENAI_API_KEY", "sk-oai")

	cfg := DefaultConfig() // provider: openai
	cfg.applyEnvOverrides()
	assert.Equal(t, "sk-oai", cfg.LLM.APIKey)

	cfg = DefaultConfig()
	cfg.LLM.Provider = "anthropic"
	cfg.applyEnvOverrides()
	assert.Equal(t, "sk-ant", cfg.LLM.APIKey)
}

func TestConfig_Validate(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	cfg.Reddit.Password = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")

	cfg = validConfig()
	cfg.LLM.Provider = "cohere"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}

func TestConfig_Clear(t *testing.T) {
	cfg := validConfig()
	cfg.Clear()
	assert.Empty(t, cfg.Reddit.ClientSecret)
	assert.Empty(t, cfg.Reddit.Password)
	assert.Empty(t, cfg.LLM.APIKey)
	// Non-secrets survive.
	assert.Equal(t, "gopher_tester", cfg.Reddit.Username)
}

func TestCollectMissing_ReadsFromReader(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reddit.ClientID = "already-set"
	input := strings.NewReader("secret-in\ngopher_tester\nhunter2\nsk-test\n")

	var out strings.Builder
	err := CollectMissing(cfg, input, &out)
	require.NoError(t, err)
	assert.Equal(t, "already-set", cfg.Reddit.ClientID)
	assert.Equal(t, "secret-in", cfg.Reddit.ClientSecret)
	assert.Equal(t, "gopher_tester", cfg.Reddit.Username)
	assert.Equal(t, "hunter2", cfg.Reddit.Password)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	// Pre-filled fields are not prompted for.
	assert.NotContains(t, out.String(), "Reddit Client ID: ")
}
