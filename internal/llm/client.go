// Package llm wraps the chat completion provider used by downstream
// email generation. All completion traffic goes through one Client so
// rate limiting and response caching apply uniformly.
package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/emailcraft/outreach/internal/domain"
)

// Client is a rate-limited chat completion client with an in-process
// response cache.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	limiter     *rate.Limiter
	cache       *ResponseCache
	logger      *zap.Logger

	warmMu   sync.Mutex
	warmedUp bool
}

// Config holds the completion provider settings.
type Config struct {
	APIKey            string
	BaseURL           string // empty uses the default endpoint
	Model             string
	Temperature       float32
	MaxTokens         int
	RequestsPerMinute int
}

// New creates a completion client.
func New(cfg Config, logger *zap.Logger) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 20
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		limiter:     rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
		cache:       NewResponseCache(),
		logger:      logger,
	}
}

// Complete sends a chat completion request and returns the assistant
// message text. Identical (system, prompt) pairs are served from cache
// without touching the provider or the rate limiter.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	key := cacheKey(c.model, system, prompt)
	if text, ok := c.cache.Get(key); ok {
		return text, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("completion rate wait: %w", err)
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response: %w", domain.ErrCompletionProviderError)
	}

	text := resp.Choices[0].Message.Content
	c.cache.Set(key, text)
	return text, nil
}

// WarmUp issues one tiny completion to cut first-call latency. Failure
// is logged and reported but never fatal.
func (c *Client) WarmUp(ctx context.Context) bool {
	c.warmMu.Lock()
	defer c.warmMu.Unlock()
	if c.warmedUp {
		return true
	}

	_, err := c.Complete(ctx, "", "Say 'ready' in one word.")
	if err != nil {
		c.logger.Warn("completion warm-up failed", zap.Error(err))
		return false
	}
	c.warmedUp = true
	c.logger.Info("completion provider warmed up", zap.String("model", c.model))
	return true
}

func parseAPIError(err error) error {
	wrap := domain.ErrCompletionProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("completion API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("completion request failed: %w", wrap)
}

func cacheKey(model, system, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + system + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}

// ResponseCache memoizes completion responses by request hash.
type ResponseCache struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewResponseCache creates an empty cache.
func NewResponseCache() *ResponseCache {
	return &ResponseCache{m: make(map[string]string)}
}

// Get returns the cached response and whether it was present.
func (c *ResponseCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	text, ok := c.m[key]
	return text, ok
}

// Set stores a response.
func (c *ResponseCache) Set(key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = text
}
