package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/noah-isme/erasmus-advisor-api/pkg/config"
	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

// GeminiClient calls the Gemini API through the Google GenAI SDK.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient builds a client for the configured model.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Complete sends the prompt and returns the concatenated text parts of the
// first candidate.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUpstreamModel.Code,
			appErrors.ErrUpstreamModel.Status, appErrors.ErrUpstreamModel.Message)
	}

	text := resp.Text()
	if text == "" {
		return "", appErrors.Clone(appErrors.ErrUpstreamModel, "model returned an empty completion")
	}

	return text, nil
}
