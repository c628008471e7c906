// Package config loads TuneCrew configuration from an optional YAML file
// with ${ENV_VAR} expansion, then applies environment overrides for
// credentials. Defaults are chosen so a zero-config run against a local
// Ollama endpoint works.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Agent   AgentConfig   `yaml:"agent"`
	Spotify SpotifyConfig `yaml:"spotify"`
	Log     LogConfig     `yaml:"log"`
}

// LLMConfig selects and parameterizes the inference transport.
type LLMConfig struct {
	Provider    string   `yaml:"provider"` // "ollama" | "openai" | "anthropic"
	BaseURL     string   `yaml:"baseUrl,omitempty"`
	Model       string   `yaml:"model,omitempty"`
	APIKey      string   `yaml:"apiKey,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
}

// AgentConfig bounds the execution loop.
type AgentConfig struct {
	MaxIterations int `yaml:"maxIterations"`
	RetryAttempts int `yaml:"retryAttempts"`
}

// SpotifyConfig carries Spotify API credentials.
type SpotifyConfig struct {
	ClientID        string `yaml:"clientId"`
	ClientSecret    string `yaml:"clientSecret"`
	UserAccessToken string `yaml:"userAccessToken,omitempty"` // needed for playback control
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		LLM:   LLMConfig{Provider: "ollama", Model: "llama3.2"},
		Agent: AgentConfig{MaxIterations: 10, RetryAttempts: 2},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

var envPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv substitutes ${VAR} references with environment values. Unset
// variables expand to the empty string.
func expandEnv(raw []byte) []byte {
	return envPattern.ReplaceAllFunc(raw, func(match []byte) []byte {
		name := envPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}

// Load reads the config file at path (skipped when path is empty or the file
// does not exist), then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Missing file is fine; defaults plus env cover the common case.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(expandEnv(raw), cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)
	normalize(cfg)
	return cfg, nil
}

// applyEnvOverrides lets credentials and endpoint selection come straight
// from the environment, taking precedence over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		cfg.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		cfg.Spotify.ClientSecret = v
	}
	if v := os.Getenv("SPOTIFY_USER_ACCESS_TOKEN"); v != "" {
		cfg.Spotify.UserAccessToken = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" && cfg.LLM.Provider == "ollama" && cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = v
	}
}

func normalize(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
	}
	if cfg.Agent.MaxIterations < 1 {
		cfg.Agent.MaxIterations = 10
	}
	if cfg.Agent.RetryAttempts < 1 {
		cfg.Agent.RetryAttempts = 2
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Validate checks provider selection and required credentials.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "ollama", "openai", "anthropic":
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	if c.Spotify.ClientID == "" || c.Spotify.ClientSecret == "" {
		return fmt.Errorf("spotify credentials missing: set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	}
	return nil
}
