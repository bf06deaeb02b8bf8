package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Cache wraps a Client with a prompt-keyed response cache persisted to a
// single JSON file. Lookups and writes serialise through a mutex; the
// file is re-read before each write so concurrent processes lose at most
// their own last entry.
type Cache struct {
	client Client
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// Ensure the wrapper satisfies the public interface.
var _ Client = (*Cache)(nil)

// CacheOption customises the cache.
type CacheOption func(*Cache)

// WithCacheLogger attaches a zap logger.
func WithCacheLogger(logger *zap.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCache wraps client, persisting responses at path.
func NewCache(client Client, path string, options ...CacheOption) (*Cache, error) {
	if client == nil {
		return nil, errors.New("llm: cache requires a client")
	}
	if path == "" {
		return nil, errors.New("llm: cache path is required")
	}
	c := &Cache{client: client, path: path, logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Generate returns the cached response when the prompt was seen before,
// otherwise delegates and stores the fresh response. Cache persistence
// failures are logged, not returned: a response that cannot be cached is
// still a response.
func (c *Cache) Generate(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	entries := c.read()
	if cached, ok := entries[prompt]; ok {
		c.mu.Unlock()
		c.logger.Debug("llm cache hit", zap.Int("prompt_len", len(prompt)))
		return cached, nil
	}
	c.mu.Unlock()

	response, err := c.client.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	entries = c.read()
	entries[prompt] = response
	if err := c.write(entries); err != nil {
		c.logger.Warn("llm cache write failed", zap.Error(err))
	}
	return response, nil
}

// Clear removes the cache file. A missing file is not an error.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("llm: clear cache: %w", err)
	}
	return nil
}

// read loads the cache file, tolerating absence and corruption by
// starting fresh.
func (c *Cache) read() map[string]string {
	entries := make(map[string]string)
	data, err := os.ReadFile(c.path)
	if err != nil {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("llm cache unreadable, starting empty", zap.Error(err))
		return make(map[string]string)
	}
	return entries
}

func (c *Cache) write(entries map[string]string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}
