package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestConfigUsesEnvAPIKeys(t *testing.T) {
	home := t.TempDir()
	setHomeEnv(t, home)
	clearKeyEnv(t)

	t.Setenv("OPENAI_API_KEY", "env-openai")
	t.Setenv("ANTHROPIC_API_KEY", "env-ant")
	t.Setenv("GOOGLE_API_KEY", "env-google")
	t.Setenv("HUGGINGFACE_API_KEY", "env-hf")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenAIAPIKey != "env-openai" || cfg.AnthropicAPIKey != "env-ant" ||
		cfg.GoogleAPIKey != "env-google" || cfg.HuggingFaceAPIKey != "env-hf" {
		t.Fatalf("expected env API keys to be used")
	}
}

func TestConfigFileFallsBehindEnv(t *testing.T) {
	home := t.TempDir()
	setHomeEnv(t, home)
	clearKeyEnv(t)

	writeConfigFile(t, home, "api_keys:\n  openai: file-openai\n  anthropic: file-ant\n")
	t.Setenv("OPENAI_API_KEY", "env-openai")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OpenAIAPIKey != "env-openai" {
		t.Fatalf("expected env to take precedence, got %q", cfg.OpenAIAPIKey)
	}
	if cfg.AnthropicAPIKey != "file-ant" {
		t.Fatalf("expected file value when env unset, got %q", cfg.AnthropicAPIKey)
	}
}

func TestConfigDefaults(t *testing.T) {
	home := t.TempDir()
	setHomeEnv(t, home)
	clearKeyEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard origin default, got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Generation.MaxTokens != 150 {
		t.Fatalf("expected default max tokens 150, got %d", cfg.Generation.MaxTokens)
	}
	if cfg.Generation.Temperature != 0.8 {
		t.Fatalf("expected default temperature 0.8, got %v", cfg.Generation.Temperature)
	}
	if cfg.Generation.MaxAttempts != 3 {
		t.Fatalf("expected default max attempts 3, got %d", cfg.Generation.MaxAttempts)
	}
	if cfg.Generation.AttemptTimeoutMS != 30000 {
		t.Fatalf("expected default attempt timeout 30000ms, got %d", cfg.Generation.AttemptTimeoutMS)
	}
	if cfg.Generation.RetryDelayMS != 1000 {
		t.Fatalf("expected default retry delay 1000ms, got %d", cfg.Generation.RetryDelayMS)
	}
}

func TestConfigFileOverridesGeneration(t *testing.T) {
	home := t.TempDir()
	setHomeEnv(t, home)
	clearKeyEnv(t)

	writeConfigFile(t, home, "generation:\n  max_tokens: 300\n  max_attempts: 5\nserver:\n  addr: \":9000\"\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Generation.MaxTokens != 300 {
		t.Fatalf("expected max tokens 300, got %d", cfg.Generation.MaxTokens)
	}
	if cfg.Generation.MaxAttempts != 5 {
		t.Fatalf("expected max attempts 5, got %d", cfg.Generation.MaxAttempts)
	}
	if cfg.Server.Addr != ":9000" {
		t.Fatalf("expected addr :9000, got %q", cfg.Server.Addr)
	}
}

func TestHasProvider(t *testing.T) {
	cfg := &Config{OpenAIAPIKey: "k"}
	if !cfg.HasProvider("openai") {
		t.Fatal("expected openai to be configured")
	}
	if cfg.HasProvider("anthropic") {
		t.Fatal("anthropic should not be configured")
	}
	if cfg.HasProvider("unknown") {
		t.Fatal("unknown provider name must report false")
	}
}

func TestCredentials(t *testing.T) {
	cfg := &Config{OpenAIAPIKey: "a", HuggingFaceAPIKey: "b"}
	creds := cfg.Credentials()
	if creds.OpenAI != "a" || creds.HuggingFace != "b" || creds.Anthropic != "" {
		t.Fatalf("unexpected credentials %+v", creds)
	}
}

func writeConfigFile(t *testing.T, home, content string) {
	t.Helper()
	configDir := filepath.Join(home, ".wingman")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("HUGGINGFACE_API_KEY", "")
	t.Setenv("WINGMAN_ADDR", "")
	t.Setenv("WINGMAN_AUTH_TOKEN", "")
}

func setHomeEnv(t *testing.T, home string) {
	t.Helper()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}
}
