// Package config holds the application configuration: Reddit credentials,
// LLM provider tuning, and fetch limits. Secrets live only in memory and in
// environment variables; Save never writes them to disk.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all redditwithllm configuration.
type Config struct {
	Reddit RedditConfig `yaml:"reddit"`
	LLM    LLMConfig    `yaml:"llm"`
	Limits LimitsConfig `yaml:"limits"`
}

// RedditConfig configures the Reddit script-app client.
type RedditConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"-"` // in-memory only
	Username     string `yaml:"username"`
	Password     string `yaml:"-"` // in-memory only
	UserAgent    string `yaml:"user_agent"`
}

// LLMConfig configures the chat backend.
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // openai, anthropic, gemini
	APIKey      string  `yaml:"-"`        // in-memory only
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// LimitsConfig bounds one snapshot fetch.
type LimitsConfig struct {
	Posts    int `yaml:"posts"`
	Comments int `yaml:"comments"`
	Saved    int `yaml:"saved"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			MaxTokens:   1000,
			Temperature: 0.7,
		},
		Limits: LimitsConfig{
			Posts:    25,
			Comments: 25,
			Saved:    50,
		},
	}
}

// DefaultPath returns the default config file location in the user's
// home directory, or the empty string if the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".redditwithllm.yaml")
}

// Load reads the config file at path (a missing file is fine, defaults
// apply), loads a .env file if present, and applies environment overrides
// on top.
func Load(path string) (*Config, error) {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the non-secret configuration to path. Credentials and API keys
// are deliberately excluded from serialization.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides lets environment variables win over file values.
func (c *Config) applyEnvOverrides() {
	setIfPresent := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setIfPresent(&c.Reddit.ClientID, "REDDIT_CLIENT_ID")
	setIfPresent(&c.Reddit.ClientSecret, "REDDIT_CLIENT_SECRET")
	setIfPresent(&c.Reddit.Username, "REDDIT_USERNAME")
	setIfPresent(&c.Reddit.Password, "REDDIT_PASSWORD")
	setIfPresent(&c.Reddit.UserAgent, "REDDIT_USER_AGENT")

	setIfPresent(&c.LLM.Provider, "LLM_PROVIDER")
	setIfPresent(&c.LLM.Model, "LLM_MODEL")

	// Provider-specific API key variables.
	keyEnvs := map[string]string{
		"openai":    "OPENAI_API_KEY",
		"anthropic": "ANTHROPIC_API_KEY",
		"gemini":    "GEMINI_API_KEY",
	}
	if env, ok := keyEnvs[c.LLM.Provider]; ok {
		setIfPresent(&c.LLM.APIKey, env)
	}
}

// Validate checks that everything required to start a session is present.
func (c *Config) Validate() error {
	var errs []string
	if c.Reddit.ClientID == "" {
		errs = append(errs, "Reddit client_id is required")
	}
	if c.Reddit.ClientSecret == "" {
		errs = append(errs, "Reddit client_secret is required")
	}
	if c.Reddit.Username == "" {
		errs = append(errs, "Reddit username is required")
	}
	if c.Reddit.Password == "" {
		errs = append(errs, "Reddit password is required")
	}
	if c.LLM.APIKey == "" {
		errs = append(errs, "LLM API key is required")
	}
	switch c.LLM.Provider {
	case "openai", "anthropic", "gemini":
	default:
		errs = append(errs, fmt.Sprintf("unsupported LLM provider: %s", c.LLM.Provider))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", joinErrors(errs))
	}
	return nil
}

// Clear wipes secrets from memory once the session ends.
func (c *Config) Clear() {
	c.Reddit.ClientSecret = ""
	c.Reddit.Password = ""
	c.LLM.APIKey = ""
}

func joinErrors(errs []string) string {
	out := errs[0]
	for _, e := range errs[1:] {
		out += "; " + e
	}
	return out
}
