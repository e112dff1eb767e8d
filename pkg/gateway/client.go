package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Defaults applied when a Config field is zero.
const (
	DefaultBaseURL             = "https://openrouter.ai/api/v1"
	DefaultModel               = "openai/gpt-4o-mini"
	DefaultMaxCompletionTokens = 4000
	DefaultTimeout             = 120 * time.Second
)

// maxErrorBodyBytes caps how much of an upstream error body is read into
// error messages and logs.
const maxErrorBodyBytes = 4096

// Config contains the settings for the chat-completion client.
type Config struct {
	// BaseURL is the upstream API root, without a trailing slash
	BaseURL string

	// Model is the model identifier sent with every request
	Model string

	// APIKey is the bearer token for the upstream
	APIKey string

	// MaxCompletionTokens caps the length of the generated reply
	MaxCompletionTokens int

	// Timeout bounds the whole request, connection setup included
	Timeout time.Duration
}

// Client issues chat-completion requests to the upstream gateway.
type Client struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a client with connection pooling, applying defaults
// for zero Config fields.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxCompletionTokens <= 0 {
		cfg.MaxCompletionTokens = DefaultMaxCompletionTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		logger: slog.Default().With("component", "gateway"),
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Complete sends one non-streaming completion request and returns the
// text of the first choice.
//
// There are no retries: a failure of any kind returns immediately with a
// typed error. 429 maps to RateLimitedError, 402 to QuotaError, any other
// non-2xx status to UpstreamError; network failures become TransportError
// and malformed success responses become ParseError.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	payload := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxCompletionTokens: c.cfg.MaxCompletionTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.cfg.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("completion request failed",
			"model", c.cfg.Model,
			"duration", time.Since(start),
			"error", err,
		)
		return "", &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		message := strings.TrimSpace(string(errorBody))

		c.logger.Warn("completion request rejected",
			"model", c.cfg.Model,
			"status", resp.StatusCode,
			"duration", time.Since(start),
		)

		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return "", &RateLimitedError{Message: message}
		case http.StatusPaymentRequired:
			return "", &QuotaError{Message: message}
		default:
			return "", &UpstreamError{StatusCode: resp.StatusCode, Message: message}
		}
	}

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ParseError{Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(responseBytes, &parsed); err != nil {
		return "", &ParseError{Cause: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &ParseError{Cause: fmt.Errorf("response contains no choices")}
	}

	content := parsed.Choices[0].Message.Content
	c.logger.Debug("completion received",
		"model", c.cfg.Model,
		"duration", time.Since(start),
		"content_length", len(content),
	)

	return content, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}
