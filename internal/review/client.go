// Package review builds per-batch prompts, calls the Anthropic Messages
// API, and extracts structured findings from the free-form response.
package review

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/joescharf/codereview/internal/models"
)

// DefaultMaxTokens bounds the model's output length per review request.
const DefaultMaxTokens = 4000

// Client wraps the Anthropic API for batch reviews.
type Client struct {
	api       *anthropic.Client
	model     anthropic.Model
	maxTokens int64
	templates *Templates
}

// NewClient creates a review client with the given API key and model.
func NewClient(apiKey, model string, templates *Templates) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	if templates == nil {
		templates = DefaultTemplates()
	}
	return &Client{
		api:       &client,
		model:     anthropic.Model(model),
		maxTokens: DefaultMaxTokens,
		templates: templates,
	}
}

// ReviewBatch submits one batch for review and returns the extracted
// findings. Network errors and undecodable responses are returned as
// errors; the caller decides they cost the batch its findings, not the run.
func (c *Client) ReviewBatch(ctx context.Context, rt models.ReviewType, batch models.Batch) ([]models.Issue, error) {
	prompt := c.templates.BuildPrompt(rt, batch)

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API call: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return ExtractIssues(text)
}
