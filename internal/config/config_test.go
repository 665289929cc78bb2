package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "3051" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3051")
	}
	if cfg.Provider != ProviderGemini {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderGemini)
	}
	if cfg.LoadPolicy != LoadPolicyFailFast {
		t.Errorf("LoadPolicy = %q, want %q", cfg.LoadPolicy, LoadPolicyFailFast)
	}
	if cfg.ReadyTimeout != 30*time.Second {
		t.Errorf("ReadyTimeout = %v, want %v", cfg.ReadyTimeout, 30*time.Second)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Errorf("MaxBodyBytes = %d, want %d", cfg.MaxBodyBytes, 1<<20)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SUMMARIZER_PROVIDER", "Claude")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("LOAD_POLICY", "retry")
	t.Setenv("READY_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.Provider != ProviderClaude {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderClaude)
	}
	if cfg.APIKey() != "sk-ant" {
		t.Errorf("APIKey() = %q, want %q", cfg.APIKey(), "sk-ant")
	}
	if cfg.Model() != "claude-sonnet-4-5-20250929" {
		t.Errorf("Model() = %q, want default claude model", cfg.Model())
	}
	if cfg.LoadPolicy != LoadPolicyRetry {
		t.Errorf("LoadPolicy = %q, want %q", cfg.LoadPolicy, LoadPolicyRetry)
	}
	if cfg.ReadyTimeout != 5*time.Second {
		t.Errorf("ReadyTimeout = %v, want 5s", cfg.ReadyTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("AllowedOrigins = %v, want two trimmed origins", cfg.AllowedOrigins)
	}
}

func TestLoadSecretFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gemini_key")
	if err := os.WriteFile(path, []byte("  file-key\n"), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("GEMINI_API_KEY_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GeminiAPIKey != "file-key" {
		t.Errorf("GeminiAPIKey = %q, want %q", cfg.GeminiAPIKey, "file-key")
	}
}

func TestLoadMissingKeyIsNotAnError(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey() != "" {
		t.Errorf("APIKey() = %q, want empty", cfg.APIKey())
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown provider", key: "SUMMARIZER_PROVIDER", value: "llama"},
		{name: "unknown load policy", key: "LOAD_POLICY", value: "sometimes"},
		{name: "zero ready timeout", key: "READY_TIMEOUT", value: "0s"},
		{name: "negative body limit", key: "MAX_BODY_BYTES", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q succeeded, want error", tt.key, tt.value)
			}
		})
	}
}

func TestLoadClient(t *testing.T) {
	t.Run("default server", func(t *testing.T) {
		cfg, err := LoadClient(viper.New())
		if err != nil {
			t.Fatalf("LoadClient() error = %v", err)
		}
		if cfg.ServerURL != "http://localhost:3051" {
			t.Errorf("ServerURL = %q, want default", cfg.ServerURL)
		}
	})

	t.Run("env with trailing slash", func(t *testing.T) {
		t.Setenv("TEXTSUM_SERVER_URL", "http://sum.test:9000/")
		cfg, err := LoadClient(viper.New())
		if err != nil {
			t.Fatalf("LoadClient() error = %v", err)
		}
		if cfg.ServerURL != "http://sum.test:9000" {
			t.Errorf("ServerURL = %q, want %q", cfg.ServerURL, "http://sum.test:9000")
		}
	})

	t.Run("explicit value wins over env", func(t *testing.T) {
		t.Setenv("TEXTSUM_SERVER_URL", "http://env.test")
		v := viper.New()
		v.Set("server_url", "http://flag.test")
		cfg, err := LoadClient(v)
		if err != nil {
			t.Fatalf("LoadClient() error = %v", err)
		}
		if cfg.ServerURL != "http://flag.test" {
			t.Errorf("ServerURL = %q, want %q", cfg.ServerURL, "http://flag.test")
		}
	})
}
