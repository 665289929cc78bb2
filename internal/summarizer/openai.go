package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

const (
	openAIProvider     = "openai"
	openAIDefaultModel = openai.ChatModelGPT5Mini

	openAIMaxOutputTokens int64 = 2048
)

// OpenAISummarizer calls OpenAI's Responses API to produce summaries
type OpenAISummarizer struct {
	client    openai.Client
	modelName string
}

// NewOpenAISummarizer builds a new summarizer instance
func NewOpenAISummarizer(apiKey, modelName string) *OpenAISummarizer {
	if modelName == "" {
		modelName = openAIDefaultModel
	}
	return &OpenAISummarizer{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		modelName: modelName,
	}
}

func (s *OpenAISummarizer) Provider() string { return openAIProvider }
func (s *OpenAISummarizer) Model() string    { return s.modelName }

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := s.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           s.modelName,
		MaxOutputTokens: openai.Int(openAIMaxOutputTokens),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(buildPrompt(text)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if resp.Status == "incomplete" {
		return "", fmt.Errorf("response is incomplete (reason = %s)", resp.IncompleteDetails.Reason)
	}

	summary := strings.TrimSpace(resp.OutputText())
	if summary == "" {
		return "", fmt.Errorf("output text is missing (status = %s)", resp.Status)
	}
	return summary, nil
}
