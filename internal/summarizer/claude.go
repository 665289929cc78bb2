package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	claudeProvider     = "claude"
	claudeDefaultModel = string(anthropic.ModelClaudeSonnet4_5_20250929)
	claudeMaxTokens    = 1024
)

// ClaudeSummarizer implements Summarizer using Anthropic's Messages API
type ClaudeSummarizer struct {
	client    anthropic.Client
	modelName string
}

// NewClaudeSummarizer creates a new Claude summarizer with the given API key
func NewClaudeSummarizer(apiKey, modelName string) *ClaudeSummarizer {
	if modelName == "" {
		modelName = claudeDefaultModel
	}
	return &ClaudeSummarizer{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		modelName: modelName,
	}
}

func (c *ClaudeSummarizer) Provider() string { return claudeProvider }
func (c *ClaudeSummarizer) Model() string    { return c.modelName }

func (c *ClaudeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.modelName),
		MaxTokens: claudeMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildPrompt(text)),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(textBlock.Text)
		}
	}

	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return "", fmt.Errorf("claude api returned no text")
	}
	return summary, nil
}
