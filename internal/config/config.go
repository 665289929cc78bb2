package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported summarizer providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// Load policies for the summarizer bridge
const (
	LoadPolicyFailFast = "fail-fast"
	LoadPolicyRetry    = "retry"
)

// Config holds all server configuration
type Config struct {
	Port      string `mapstructure:"port"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	Provider        string `mapstructure:"summarizer_provider"`
	GeminiAPIKey    string `mapstructure:"gemini_api_key"`
	GeminiModel     string `mapstructure:"gemini_model"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	OpenAIModel     string `mapstructure:"openai_model"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
	AnthropicModel  string `mapstructure:"anthropic_model"`

	LoadPolicy      string        `mapstructure:"load_policy"`
	ReadyTimeout    time.Duration `mapstructure:"ready_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// ClientConfig holds configuration for the terminal client
type ClientConfig struct {
	ServerURL string
	LogLevel  string
}

// Load reads configuration from environment variables
// Supports _FILE suffix pattern for reading secrets from files (Docker Swarm style)
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "3051")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("summarizer_provider", ProviderGemini)
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("openai_model", "gpt-5-mini")
	v.SetDefault("anthropic_model", "claude-sonnet-4-5-20250929")
	v.SetDefault("load_policy", LoadPolicyFailFast)
	v.SetDefault("ready_timeout", "30s")
	v.SetDefault("shutdown_timeout", "30s")
	v.SetDefault("max_body_bytes", 1<<20)
	v.SetDefault("allowed_origins", "*")

	envBindings := map[string]string{
		"port":                "PORT",
		"log_level":           "LOG_LEVEL",
		"log_format":          "LOG_FORMAT",
		"summarizer_provider": "SUMMARIZER_PROVIDER",
		"gemini_api_key":      "GEMINI_API_KEY",
		"gemini_model":        "GEMINI_MODEL",
		"openai_api_key":      "OPENAI_API_KEY",
		"openai_model":        "OPENAI_MODEL",
		"anthropic_api_key":   "ANTHROPIC_API_KEY",
		"anthropic_model":     "ANTHROPIC_MODEL",
		"load_policy":         "LOAD_POLICY",
		"ready_timeout":       "READY_TIMEOUT",
		"shutdown_timeout":    "SHUTDOWN_TIMEOUT",
		"max_body_bytes":      "MAX_BODY_BYTES",
		"allowed_origins":     "ALLOWED_ORIGINS",
	}

	for key, envVar := range envBindings {
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("failed to bind env var %s: %w", envVar, err)
		}
	}

	cfg := &Config{
		Port:            getConfigValue(v, "port", "PORT"),
		LogLevel:        strings.ToLower(getConfigValue(v, "log_level", "LOG_LEVEL")),
		LogFormat:       strings.ToLower(getConfigValue(v, "log_format", "LOG_FORMAT")),
		Provider:        strings.ToLower(getConfigValue(v, "summarizer_provider", "SUMMARIZER_PROVIDER")),
		GeminiAPIKey:    getConfigValue(v, "gemini_api_key", "GEMINI_API_KEY"),
		GeminiModel:     getConfigValue(v, "gemini_model", "GEMINI_MODEL"),
		OpenAIAPIKey:    getConfigValue(v, "openai_api_key", "OPENAI_API_KEY"),
		OpenAIModel:     getConfigValue(v, "openai_model", "OPENAI_MODEL"),
		AnthropicAPIKey: getConfigValue(v, "anthropic_api_key", "ANTHROPIC_API_KEY"),
		AnthropicModel:  getConfigValue(v, "anthropic_model", "ANTHROPIC_MODEL"),
		LoadPolicy:      strings.ToLower(getConfigValue(v, "load_policy", "LOAD_POLICY")),
		ReadyTimeout:    v.GetDuration("ready_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		MaxBodyBytes:    v.GetInt64("max_body_bytes"),
		AllowedOrigins:  splitList(v.GetString("allowed_origins")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderClaude:
	default:
		return fmt.Errorf("SUMMARIZER_PROVIDER must be one of gemini, openai, claude (got %q)", c.Provider)
	}

	switch c.LoadPolicy {
	case LoadPolicyFailFast, LoadPolicyRetry:
	default:
		return fmt.Errorf("LOAD_POLICY must be fail-fast or retry (got %q)", c.LoadPolicy)
	}

	if c.ReadyTimeout <= 0 {
		return fmt.Errorf("READY_TIMEOUT must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	return nil
}

// APIKey returns the key for the configured provider
func (c *Config) APIKey() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderClaude:
		return c.AnthropicAPIKey
	default:
		return c.GeminiAPIKey
	}
}

// Model returns the model name for the configured provider
func (c *Config) Model() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIModel
	case ProviderClaude:
		return c.AnthropicModel
	default:
		return c.GeminiModel
	}
}

// LoadClient reads client configuration from v, which the caller may have
// bound to command-line flags.
func LoadClient(v *viper.Viper) (*ClientConfig, error) {
	v.SetDefault("server_url", "http://localhost:3051")
	v.SetDefault("log_level", "warn")

	if err := v.BindEnv("server_url", "TEXTSUM_SERVER_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind env var TEXTSUM_SERVER_URL: %w", err)
	}
	if err := v.BindEnv("log_level", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind env var LOG_LEVEL: %w", err)
	}

	cfg := &ClientConfig{
		ServerURL: strings.TrimRight(strings.TrimSpace(v.GetString("server_url")), "/"),
		LogLevel:  strings.ToLower(v.GetString("log_level")),
	}
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("server URL is required")
	}

	return cfg, nil
}

// getConfigValue checks for FOO_FILE env var first, reads from file if exists,
// otherwise falls back to FOO env var
func getConfigValue(v *viper.Viper, key, envVar string) string {
	fileEnvVar := envVar + "_FILE"
	if filePath := os.Getenv(fileEnvVar); filePath != "" {
		if data, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(data))
		}
	}

	return v.GetString(key)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
