package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultOllamaBaseURL     = "http://localhost:11434"
	defaultOllamaModel       = "llama2"
	defaultOllamaContext     = 4096
	defaultOllamaTemperature = 0.7
)

// OllamaOption customises the Ollama client.
type OllamaOption func(*Ollama)

// WithOllamaModel overrides the model name.
func WithOllamaModel(model string) OllamaOption {
	return func(c *Ollama) {
		if model != "" {
			c.model = model
		}
	}
}

// WithOllamaContextSize sets the num_ctx option.
func WithOllamaContextSize(numCtx int) OllamaOption {
	return func(c *Ollama) {
		if numCtx > 0 {
			c.numCtx = numCtx
		}
	}
}

// WithOllamaTemperature sets the sampling temperature.
func WithOllamaTemperature(temperature float64) OllamaOption {
	return func(c *Ollama) {
		c.temperature = temperature
	}
}

// WithOllamaHTTPClient injects a custom HTTP client.
func WithOllamaHTTPClient(client *http.Client) OllamaOption {
	return func(c *Ollama) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithOllamaLogger attaches a zap logger.
func WithOllamaLogger(logger *zap.Logger) OllamaOption {
	return func(c *Ollama) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Ollama talks to a local Ollama instance over its generate API.
type Ollama struct {
	baseURL     string
	model       string
	numCtx      int
	temperature float64
	httpClient  *http.Client
	logger      *zap.Logger
}

// Ensure the implementation satisfies the public interface.
var _ Client = (*Ollama)(nil)

// NewOllama builds a client. Empty baseURL falls back to OLLAMA_BASE_URL
// and then http://localhost:11434. Model falls back to OLLAMA_MODEL.
// Local models with large prompts can be slow, hence the generous default
// timeout.
func NewOllama(baseURL string, options ...OllamaOption) *Ollama {
	if baseURL == "" {
		baseURL = envOr("OLLAMA_BASE_URL", defaultOllamaBaseURL)
	}

	c := &Ollama{
		baseURL:     baseURL,
		model:       envOr("OLLAMA_MODEL", defaultOllamaModel),
		numCtx:      envIntOr("OLLAMA_N_CTX", defaultOllamaContext),
		temperature: defaultOllamaTemperature,
		httpClient:  &http.Client{Timeout: 5 * time.Minute},
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Model returns the configured model name.
func (c *Ollama) Model() string {
	return c.model
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumCtx      int     `json:"num_ctx"`
	Temperature float64 `json:"temperature"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Generate sends the prompt to /api/generate without streaming.
func (c *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", errors.New("llm: prompt is required")
	}

	payload, err := json.Marshal(ollamaRequest{
		Model:  c.model,
		Prompt: prompt,
		Options: ollamaOptions{
			NumCtx:      c.numCtx,
			Temperature: c.temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("ollama generate", zap.String("model", c.model))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: ollama request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm: ollama status %s: %s", resp.Status, truncate(string(body), 200))
	}

	var parsed ollamaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("llm: ollama error: %s", parsed.Error)
	}
	return parsed.Response, nil
}
