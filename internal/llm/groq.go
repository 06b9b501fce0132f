package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// healthCacheTTL is how long a provider probe result stays valid.
const healthCacheTTL = 60 * time.Second

// retryBackoffBase is the first retry delay; subsequent delays double.
const retryBackoffBase = 2 * time.Second

// GroqClient talks to Groq's OpenAI-compatible chat completions endpoint.
type GroqClient struct {
	cfg        Config
	httpClient *http.Client

	healthMu sync.Mutex
	health   HealthStatus
}

// NewGroqClient creates a client from the given config.
func NewGroqClient(cfg Config) *GroqClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	return &GroqClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Model returns the configured model identifier.
func (c *GroqClient) Model() string {
	return c.cfg.Model
}

// Configured reports whether a usable API key is present.
func (c *GroqClient) Configured() bool {
	return c.cfg.Configured()
}

// chatRequest is the wire format of POST /chat/completions.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

// chatResponse is the subset of the completion response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete runs one chat completion against Groq. Unconfigured clients
// short-circuit to NOT_CONFIGURED without touching the network. Retryable
// provider failures (5xx, 429, timeouts) are retried with exponential
// backoff before giving up with PROVIDER_ERROR.
func (c *GroqClient) Complete(ctx context.Context, req Request) Result {
	if c.cfg.Mock {
		return mockResult(req)
	}
	if !c.Configured() {
		return Result{
			Success:     false,
			ErrorReason: ErrorNotConfigured,
			Detail:      "Groq API key is not configured",
		}
	}

	var lastDetail string
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		result, retryable := c.attempt(ctx, req)
		if result.Success || !retryable {
			return result
		}
		lastDetail = result.Detail

		if attempt < c.cfg.MaxRetries {
			delay := retryBackoffBase << (attempt - 1)
			log.Printf("groq: attempt %d/%d failed (%s), retrying in %v",
				attempt, c.cfg.MaxRetries, result.Detail, delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return Result{
					Success:     false,
					ErrorReason: ErrorProvider,
					Detail:      fmt.Sprintf("cancelled during retry: %v", ctx.Err()),
				}
			}
		}
	}
	return Result{
		Success:     false,
		ErrorReason: ErrorProvider,
		Detail:      fmt.Sprintf("all %d attempts failed: %s", c.cfg.MaxRetries, lastDetail),
	}
}

// attempt performs one HTTP round trip. The second return value reports
// whether the failure is worth retrying.
func (c *GroqClient) attempt(ctx context.Context, req Request) (Result, bool) {
	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Result{Success: false, ErrorReason: ErrorProvider,
			Detail: fmt.Sprintf("failed to encode request: %v", err)}, false
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Result{Success: false, ErrorReason: ErrorProvider,
			Detail: fmt.Sprintf("failed to create request: %v", err)}, false
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Network errors and timeouts are retryable.
		return Result{Success: false, ErrorReason: ErrorProvider,
			Detail: fmt.Sprintf("request failed: %v", err)}, true
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Success: false, ErrorReason: ErrorProvider,
			Detail: fmt.Sprintf("failed to read response: %v", err)}, true
	}

	if resp.StatusCode != http.StatusOK {
		detail := providerErrorDetail(resp.StatusCode, respBody)
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return Result{Success: false, ErrorReason: ErrorProvider, Detail: detail}, retryable
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return Result{Success: false, ErrorReason: ErrorProvider,
			Detail: fmt.Sprintf("failed to parse response: %v", err)}, false
	}
	if len(parsed.Choices) == 0 {
		return Result{Success: false, ErrorReason: ErrorProvider,
			Detail: "response contained no choices"}, false
	}

	return Result{
		Success: true,
		Content: parsed.Choices[0].Message.Content,
		Usage:   parsed.Usage,
	}, false
}

// providerErrorDetail extracts the provider's error message when the body
// is the standard {"error": {"message": ...}} shape.
func providerErrorDetail(status int, body []byte) string {
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", status, parsed.Error.Message)
	}
	return fmt.Sprintf("HTTP %d", status)
}

// Health probes the provider with a minimal completion, caching the result
// for healthCacheTTL to keep health endpoints cheap.
func (c *GroqClient) Health(ctx context.Context) HealthStatus {
	c.healthMu.Lock()
	defer c.healthMu.Unlock()

	if !c.health.CheckedAt.IsZero() && time.Since(c.health.CheckedAt) < healthCacheTTL {
		return c.health
	}

	status := HealthStatus{
		Configured: c.Configured(),
		Model:      c.cfg.Model,
		CheckedAt:  time.Now(),
	}
	if !status.Configured && !c.cfg.Mock {
		status.Detail = "API key not configured"
		c.health = status
		return status
	}

	probe := Request{System: "You are a health check.", User: "Reply with OK.", MaxTokens: 5, Temperature: 0}
	result := c.Complete(ctx, probe)
	status.Available = result.Success
	if !result.Success {
		status.Detail = result.Detail
	}
	c.health = status
	return status
}

// mockResult returns deterministic canned content for offline development.
func mockResult(req Request) Result {
	content := "MOCK RESPONSE"
	switch {
	case strings.Contains(req.System, "JSON"):
		content = `{"mock": true}`
	case req.MaxTokens <= 5:
		content = "OK"
	}
	return Result{
		Success: true,
		Content: content,
		Usage:   Usage{PromptTokens: 0, CompletionTokens: 0, TotalTokens: 0},
	}
}
