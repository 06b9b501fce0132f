package llm

import (
	"context"
	"time"
)

// ErrorReason classifies why a completion did not succeed.
type ErrorReason string

// Completion failure reasons. NOT_CONFIGURED means no usable API key was
// present and no network call was made; PROVIDER_ERROR covers everything
// the provider or network did wrong.
const (
	ErrorNone          ErrorReason = ""
	ErrorNotConfigured ErrorReason = "NOT_CONFIGURED"
	ErrorProvider      ErrorReason = "PROVIDER_ERROR"
)

// Message is a single chat message in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes one chat completion. System and User become the two
// messages of the conversation.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Usage reports token consumption for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Result is the outcome of a completion. Callers branch on Success; failed
// completions carry an ErrorReason and a human-readable Detail instead of a
// Go error, so a provider outage can never propagate as a panic or crash.
type Result struct {
	Success     bool
	Content     string
	ErrorReason ErrorReason
	Detail      string
	Usage       Usage
}

// HealthStatus is the cached result of the most recent provider probe.
type HealthStatus struct {
	Available  bool      `json:"available"`
	Configured bool      `json:"configured"`
	Model      string    `json:"model"`
	Detail     string    `json:"detail,omitempty"`
	CheckedAt  time.Time `json:"checkedAt"`
}

// Client is the completion interface the pipeline stages depend on.
type Client interface {
	// Complete runs one chat completion. It never returns a Go error;
	// failures are reported through the Result.
	Complete(ctx context.Context, req Request) Result
	// Health probes the provider, caching the outcome briefly.
	Health(ctx context.Context) HealthStatus
	// Model returns the configured model identifier.
	Model() string
	// Configured reports whether a usable API key is present.
	Configured() bool
}

// Completion presets. Token budgets and temperatures are tuned per stage:
// analysis wants determinism, chat wants variety.

// JobAnalysisRequest builds the preset for job posting analysis.
func JobAnalysisRequest(system, user string) Request {
	return Request{System: system, User: user, MaxTokens: 3000, Temperature: 0.3}
}

// TailoringRequest builds the preset for resume content tailoring.
func TailoringRequest(system, user string) Request {
	return Request{System: system, User: user, MaxTokens: 4000, Temperature: 0.4}
}

// LatexConversionRequest builds the preset for prose-to-LaTeX conversion.
func LatexConversionRequest(system, user string) Request {
	return Request{System: system, User: user, MaxTokens: 4000, Temperature: 0.2}
}

// ExtractionRequest builds the preset for structured resume extraction.
func ExtractionRequest(system, user string) Request {
	return Request{System: system, User: user, MaxTokens: 4000, Temperature: 0.2}
}

// ChatRequest builds the preset for interactive resume advice.
func ChatRequest(system, user string) Request {
	return Request{System: system, User: user, MaxTokens: 1500, Temperature: 0.7}
}
