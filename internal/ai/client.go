package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// ErrModelUnavailable wraps every failure to get a completion out of the backend.
var ErrModelUnavailable = errors.New("model unavailable")

// ModelClient sends a prompt to a text-generation backend and returns the raw completion.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatClientConfig configures a ChatClient.
type ChatClientConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
	// MaxConcurrent caps in-flight completions; zero disables the cap.
	MaxConcurrent int
}

// ChatClient talks to an OpenAI-compatible /chat/completions endpoint.
type ChatClient struct {
	http        *resty.Client
	model       string
	temperature float64
	slots       *semaphore.Weighted
	logger      *zap.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewChatClient builds a client with a single attempt per call; callers decide about retries.
func NewChatClient(cfg ChatClientConfig, logger *zap.Logger) *ChatClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	c := &ChatClient{
		http:        client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger.Named("model_client"),
	}
	if cfg.MaxConcurrent > 0 {
		c.slots = semaphore.NewWeighted(int64(cfg.MaxConcurrent))
	}
	return c
}

// Complete sends prompt as a single user message and returns the first choice's text.
func (c *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.slots != nil {
		if err := c.slots.Acquire(ctx, 1); err != nil {
			return "", fmt.Errorf("%w: waiting for a free slot: %v", ErrModelUnavailable, err)
		}
		defer c.slots.Release(1)
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       c.model,
			Temperature: c.temperature,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	c.logger.Debug("chat completion finished",
		zap.String("model", c.model),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.IsError() {
		var apiErr chatError
		if json.Unmarshal(resp.Body(), &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("%w: status %d: %s", ErrModelUnavailable, resp.StatusCode(), apiErr.Error.Message)
		}
		return "", fmt.Errorf("%w: status %d", ErrModelUnavailable, resp.StatusCode())
	}

	var result chatResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrModelUnavailable, err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrModelUnavailable)
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
