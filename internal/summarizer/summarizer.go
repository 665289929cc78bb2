package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/drywaters/textsum/internal/config"
)

// ErrMissingAPIKey is returned when the configured provider has no API key
var ErrMissingAPIKey = errors.New("api key not configured")

// Summarizer defines the interface for AI-powered text summarization
type Summarizer interface {
	// Summarize returns a markdown summary of text
	Summarize(ctx context.Context, text string) (string, error)

	// Provider returns the provider identifier (e.g., "gemini", "openai")
	Provider() string

	// Model returns the specific model being used
	Model() string
}

// Options selects and configures a provider
type Options struct {
	Provider string
	APIKey   string
	Model    string
}

// OptionsFromConfig builds Options for the configured provider
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey(),
		Model:    cfg.Model(),
	}
}

// New creates the summarizer for opts.Provider. For Gemini this also checks
// that the model is reachable, so a nil error means the summarizer is usable.
func New(ctx context.Context, opts Options) (Summarizer, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%s: %w", opts.Provider, ErrMissingAPIKey)
	}

	switch opts.Provider {
	case config.ProviderGemini:
		return NewGeminiSummarizer(ctx, opts.APIKey, opts.Model)
	case config.ProviderOpenAI:
		return NewOpenAISummarizer(opts.APIKey, opts.Model), nil
	case config.ProviderClaude:
		return NewClaudeSummarizer(opts.APIKey, opts.Model), nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", opts.Provider)
	}
}

func buildPrompt(text string) string {
	var sb strings.Builder

	sb.WriteString("Please summarize the following text concisely while maintaining key information.\n")
	sb.WriteString("Format the response in markdown with:\n")
	sb.WriteString("- A brief overview as a heading\n")
	sb.WriteString("- Key points as a bulleted list\n")
	sb.WriteString("- Any important quotes in blockquotes\n")
	sb.WriteString("- Use bold and italic for emphasis where appropriate\n\n")
	sb.WriteString("Text to summarize:\n")
	sb.WriteString(text)

	return sb.String()
}
