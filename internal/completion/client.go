package completion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	// DefaultEndpoint is the chat-completion gateway
	DefaultEndpoint = "https://llm-gateway.assemblyai.com/v1/chat/completions"

	DefaultModel       = "gpt-4.1"
	DefaultTemperature = 0.5
	DefaultMaxTokens   = 500
)

// Ensure Client implements domain.Completer
var _ domain.Completer = (*Client)(nil)

// Options configures the completion client
type Options struct {
	Endpoint    string
	Token       string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client calls an OpenAI-compatible chat-completion endpoint
type Client struct {
	opts       Options
	httpClient *http.Client
	logger     *slog.Logger
}

type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewClient creates a completion client, filling unset options with defaults
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	return &Client{
		opts: opts,
		// No client timeout: a request ends when its context is cancelled.
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Complete sends the prompt and returns the text of the first choice.
// The text is returned verbatim; parsing is the caller's job.
// A missing choice yields "" with no error.
func (c *Client) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.opts.Model,
		Messages:    messages,
		Temperature: c.opts.Temperature,
		MaxTokens:   c.opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// The gateway takes the raw key, no scheme prefix.
	req.Header.Set("Authorization", c.opts.Token)

	c.logger.Debug("completion request", "model", c.opts.Model, "messages", len(messages))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrCancelled, ctx.Err())
		}
		return "", fmt.Errorf("%w: completion request: %w", domain.ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrCancelled, ctx.Err())
		}
		return "", fmt.Errorf("%w: read response: %w", domain.ErrRequestFailed, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", domain.ErrAuthFailed
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("completion request error", "status", resp.StatusCode, "body", string(body))
		return "", fmt.Errorf("%w: completion failed: %s", domain.ErrRequestFailed, resp.Status)
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", domain.ErrRequestFailed, err)
	}
	if len(decoded.Choices) == 0 {
		return "", nil
	}
	return decoded.Choices[0].Message.Content, nil
}
