package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	geminiProvider     = "gemini"
	geminiDefaultModel = "gemini-2.5-flash"
)

// GeminiSummarizer implements Summarizer using Google's Gemini API
type GeminiSummarizer struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewGeminiSummarizer creates a Gemini client and verifies the model exists
func NewGeminiSummarizer(ctx context.Context, apiKey, modelName string) (*GeminiSummarizer, error) {
	if modelName == "" {
		modelName = geminiDefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)

	temp := float32(0.3)
	model.Temperature = &temp

	if _, err := model.Info(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to load Gemini model %s: %w", modelName, err)
	}

	return &GeminiSummarizer{
		client:    client,
		model:     model,
		modelName: modelName,
	}, nil
}

func (g *GeminiSummarizer) Provider() string { return geminiProvider }
func (g *GeminiSummarizer) Model() string    { return g.modelName }

func (g *GeminiSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(text)))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	summary := extractText(resp)
	if summary == "" {
		return "", fmt.Errorf("no text generated")
	}

	return summary, nil
}

// Close closes the Gemini client
func (g *GeminiSummarizer) Close() error {
	return g.client.Close()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var result strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			result.WriteString(string(text))
		}
	}

	return strings.TrimSpace(result.String())
}
