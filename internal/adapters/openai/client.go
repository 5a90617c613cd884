package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"sedi/internal/adapters/observability"
)

const DefaultModel = "gpt-4o-mini"

// Client is a chat-completion backed domain.Completer.
type Client struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	BaseURL string // empty keeps the library default
	Model   string
	Timeout time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{client: openai.NewClientWithConfig(clientCfg), model: cfg.Model}, nil
}

// Complete sends prompt as a single user message with deterministic sampling.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		// a literal 0 is dropped by omitempty and the API would fall back to 1
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		observability.ObserveExternal("openai", "chat_completions", statusOf(err), time.Since(start))
		return "", parseAPIError(err)
	}
	observability.ObserveExternal("openai", "chat_completions", http.StatusOK, time.Since(start))
	observability.ObserveTokens(c.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// parseAPIError keeps the HTTP status and provider message, and wraps the original error.
func parseAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("openai: API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("openai: request error %d: %w", reqErr.HTTPStatusCode, err)
	}
	return fmt.Errorf("openai: request failed: %w", err)
}
