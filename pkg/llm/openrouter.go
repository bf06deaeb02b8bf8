package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "anthropic/claude-3-opus-20240229"
	defaultMaxTokens         = 4096
	defaultTemperature       = 0.2
	defaultRetries           = 3
	defaultRetryBackoff      = 500 * time.Millisecond
)

// OpenRouterOption customises the OpenRouter client.
type OpenRouterOption func(*OpenRouter)

// WithOpenRouterModel overrides the model identifier.
func WithOpenRouterModel(model string) OpenRouterOption {
	return func(c *OpenRouter) {
		if model != "" {
			c.model = model
		}
	}
}

// WithOpenRouterBaseURL overrides the API base URL.
func WithOpenRouterBaseURL(baseURL string) OpenRouterOption {
	return func(c *OpenRouter) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithOpenRouterMaxTokens caps the completion length.
func WithOpenRouterMaxTokens(maxTokens int) OpenRouterOption {
	return func(c *OpenRouter) {
		if maxTokens > 0 {
			c.maxTokens = maxTokens
		}
	}
}

// WithOpenRouterTemperature sets the sampling temperature.
func WithOpenRouterTemperature(temperature float64) OpenRouterOption {
	return func(c *OpenRouter) {
		c.temperature = temperature
	}
}

// WithOpenRouterHTTPClient injects a custom HTTP client.
func WithOpenRouterHTTPClient(client *http.Client) OpenRouterOption {
	return func(c *OpenRouter) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithOpenRouterRetries sets how many attempts are made for retryable
// failures (429 and 5xx).
func WithOpenRouterRetries(retries int) OpenRouterOption {
	return func(c *OpenRouter) {
		if retries > 0 {
			c.retries = retries
		}
	}
}

// WithOpenRouterLogger attaches a zap logger.
func WithOpenRouterLogger(logger *zap.Logger) OpenRouterOption {
	return func(c *OpenRouter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// OpenRouter talks to the OpenRouter chat completions API.
type OpenRouter struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	retries     int
	backoff     time.Duration
	httpClient  *http.Client
	logger      *zap.Logger
}

// Ensure the implementation satisfies the public interface.
var _ Client = (*OpenRouter)(nil)

// NewOpenRouter builds a client. The API key is required; it falls back
// to OPENROUTER_API_KEY when empty. Base URL, model, and max tokens fall
// back to their OPENROUTER_* variables before the built-in defaults.
func NewOpenRouter(apiKey string, options ...OpenRouterOption) (*OpenRouter, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENROUTER_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("llm: openrouter api key is required; set OPENROUTER_API_KEY or pass it explicitly")
	}

	c := &OpenRouter{
		apiKey:      apiKey,
		baseURL:     envOr("OPENROUTER_BASE_URL", defaultOpenRouterBaseURL),
		model:       envOr("OPENROUTER_MODEL", defaultOpenRouterModel),
		maxTokens:   envIntOr("OPENROUTER_MAX_TOKENS", defaultMaxTokens),
		temperature: defaultTemperature,
		retries:     defaultRetries,
		backoff:     defaultRetryBackoff,
		httpClient:  &http.Client{Timeout: 2 * time.Minute},
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Model returns the configured model identifier.
func (c *OpenRouter) Model() string {
	return c.model
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt as a single user message and returns the
// first choice. Retryable statuses back off exponentially between
// attempts.
func (c *OpenRouter) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", errors.New("llm: prompt is required")
	}

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	var lastErr error
	backoff := c.backoff
	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			c.logger.Debug("openrouter retry",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		text, retryable, err := c.attempt(ctx, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}
	return "", fmt.Errorf("llm: openrouter request failed after %d attempts: %w", c.retries, lastErr)
}

func (c *OpenRouter) attempt(ctx context.Context, payload []byte) (text string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", envOr("OPENROUTER_REFERER", "http://localhost:3000"))
	req.Header.Set("X-Title", envOr("OPENROUTER_TITLE", "go-promptstore"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("llm: openrouter request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("llm: read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("llm: openrouter status %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("llm: openrouter status %s: %s", resp.Status, truncate(string(body), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false, fmt.Errorf("llm: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", false, fmt.Errorf("llm: openrouter error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", false, errors.New("llm: openrouter response has no choices")
	}
	return parsed.Choices[0].Message.Content, false, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
