package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/charmlabs/wingman/pkg/provider"
)

// Config holds the application configuration.
type Config struct {
	OpenAIAPIKey      string
	AnthropicAPIKey   string
	GoogleAPIKey      string
	HuggingFaceAPIKey string
	Server            ServerConfig
	Generation        GenerationConfig
	ConfigDir         string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AuthToken      string   `yaml:"auth_token"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// GenerationConfig holds defaults for the generation chain.
type GenerationConfig struct {
	MaxTokens        int     `yaml:"max_tokens"`
	Temperature      float64 `yaml:"temperature"`
	MaxAttempts      int     `yaml:"max_attempts"`
	AttemptTimeoutMS int     `yaml:"attempt_timeout_ms"`
	RetryDelayMS     int     `yaml:"retry_delay_ms"`
}

// AttemptTimeout returns the per-attempt deadline as a duration.
func (g GenerationConfig) AttemptTimeout() time.Duration {
	return time.Duration(g.AttemptTimeoutMS) * time.Millisecond
}

// RetryDelay returns the linear backoff base as a duration.
func (g GenerationConfig) RetryDelay() time.Duration {
	return time.Duration(g.RetryDelayMS) * time.Millisecond
}

// FileConfig represents the structure of ~/.wingman/config.yaml
type FileConfig struct {
	APIKeys    APIKeysConfig    `yaml:"api_keys"`
	Server     ServerConfig     `yaml:"server"`
	Generation GenerationConfig `yaml:"generation"`
}

// APIKeysConfig holds API key configuration from file.
type APIKeysConfig struct {
	OpenAI      string `yaml:"openai"`
	Anthropic   string `yaml:"anthropic"`
	Google      string `yaml:"google"`
	HuggingFace string `yaml:"huggingface"`
}

// Load reads configuration from the config file and environment variables.
// Environment variables take precedence over file configuration.
func Load() (*Config, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	fileConfig := loadFileConfig(filepath.Join(configDir, "config.yaml"))

	cfg := &Config{
		OpenAIAPIKey:      getEnvOrDefault("OPENAI_API_KEY", fileConfig.APIKeys.OpenAI),
		AnthropicAPIKey:   getEnvOrDefault("ANTHROPIC_API_KEY", fileConfig.APIKeys.Anthropic),
		GoogleAPIKey:      getEnvOrDefault("GOOGLE_API_KEY", fileConfig.APIKeys.Google),
		HuggingFaceAPIKey: getEnvOrDefault("HUGGINGFACE_API_KEY", fileConfig.APIKeys.HuggingFace),
		Server: ServerConfig{
			Addr:           getEnvOrDefault("WINGMAN_ADDR", fileConfig.Server.Addr),
			AuthToken:      getEnvOrDefault("WINGMAN_AUTH_TOKEN", fileConfig.Server.AuthToken),
			AllowedOrigins: fileConfig.Server.AllowedOrigins,
		},
		Generation: fileConfig.Generation,
		ConfigDir:  configDir,
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Generation.MaxTokens <= 0 {
		c.Generation.MaxTokens = 150
	}
	if c.Generation.Temperature <= 0 {
		c.Generation.Temperature = 0.8
	}
	if c.Generation.MaxAttempts <= 0 {
		c.Generation.MaxAttempts = 3
	}
	if c.Generation.AttemptTimeoutMS <= 0 {
		c.Generation.AttemptTimeoutMS = 30000
	}
	if c.Generation.RetryDelayMS <= 0 {
		c.Generation.RetryDelayMS = 1000
	}
}

// Credentials returns the provider credentials for registry construction.
func (c *Config) Credentials() provider.Credentials {
	return provider.Credentials{
		OpenAI:      c.OpenAIAPIKey,
		Anthropic:   c.AnthropicAPIKey,
		Google:      c.GoogleAPIKey,
		HuggingFace: c.HuggingFaceAPIKey,
	}
}

// HasProvider returns true if the API key for the given provider is configured.
func (c *Config) HasProvider(name string) bool {
	switch name {
	case "openai":
		return c.OpenAIAPIKey != ""
	case "anthropic":
		return c.AnthropicAPIKey != ""
	case "google":
		return c.GoogleAPIKey != ""
	case "huggingface":
		return c.HuggingFaceAPIKey != ""
	default:
		return false
	}
}

// loadFileConfig reads the config file, returning empty config if not found.
func loadFileConfig(path string) *FileConfig {
	cfg := &FileConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, cfg)
	return cfg
}

// getEnvOrDefault returns the environment variable value if set,
// otherwise returns the default value.
func getEnvOrDefault(envVar, defaultValue string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return defaultValue
}

func getConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".wingman")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}
