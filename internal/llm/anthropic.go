package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
)

const (
	DefaultAnthropicURL     = "https://api.anthropic.com/v1/messages"
	DefaultAnthropicVersion = "2023-06-01"
	anthropicProviderName   = "anthropic"
)

// AnthropicClient implements core.Reviewer against the messages API.
type AnthropicClient struct {
	endpoint   string
	apiKey     string
	apiVersion string
	model      string
	maxTokens  int
	client     *http.Client
	logger     *slog.Logger
}

// AnthropicOption configures an AnthropicClient.
type AnthropicOption func(*AnthropicClient)

// WithEndpoint overrides the messages endpoint URL.
func WithEndpoint(url string) AnthropicOption {
	return func(a *AnthropicClient) { a.endpoint = url }
}

// WithAPIKey attaches the service credential as the x-api-key header.
func WithAPIKey(key string) AnthropicOption {
	return func(a *AnthropicClient) { a.apiKey = key }
}

// WithAPIVersion sets the anthropic-version header.
func WithAPIVersion(version string) AnthropicOption {
	return func(a *AnthropicClient) { a.apiVersion = version }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) AnthropicOption {
	return func(a *AnthropicClient) { a.client = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) AnthropicOption {
	return func(a *AnthropicClient) { a.logger = l }
}

// NewAnthropicClient creates a client sending model and maxTokens with every request.
func NewAnthropicClient(model string, maxTokens int, opts ...AnthropicOption) (*AnthropicClient, error) {
	if model == "" {
		return nil, fmt.Errorf("model cannot be empty")
	}
	if maxTokens <= 0 {
		return nil, fmt.Errorf("max tokens must be positive, got: %d", maxTokens)
	}
	a := &AnthropicClient{
		endpoint:   DefaultAnthropicURL,
		apiVersion: DefaultAnthropicVersion,
		model:      model,
		maxTokens:  maxTokens,
		client:     NewHTTPClient(0),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *AnthropicClient) Name() string { return anthropicProviderName }

// Review performs one POST and returns the text of the first content block.
// Transport and decoding failures are returned as-is; a reply without text
// content returns core.ErrNoReviewContent.
func (a *AnthropicClient) Review(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(messagesRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("x-api-key", a.apiKey)
	}
	if a.apiVersion != "" {
		req.Header.Set("anthropic-version", a.apiVersion)
	}

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	a.logger.Debug("messages API responded",
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("malformed response (HTTP %d): body is not valid JSON", resp.StatusCode)
	}

	text := gjson.GetBytes(body, "content.0.text")
	if text.Type != gjson.String {
		a.logger.Warn("messages API reply has no text content",
			"status", resp.StatusCode,
			"api_error", gjson.GetBytes(body, "error.message").String(),
		)
		return "", core.ErrNoReviewContent
	}
	return text.String(), nil
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
