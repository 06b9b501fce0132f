package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "gsk_1234567890abcdefghijklmnop"

func newTestClient(baseURL string) *GroqClient {
	return NewGroqClient(Config{
		APIKey:     testKey,
		BaseURL:    baseURL,
		MaxRetries: 2,
	})
}

func completionBody(content string) string {
	return `{
		"choices": [{"message": {"role": "assistant", "content": ` + mustJSON(content) + `}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30}
	}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestComplete_Success(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("tailored resume text")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.Complete(context.Background(), TailoringRequest("system prompt", "user prompt"))

	require.True(t, result.Success)
	assert.Equal(t, "tailored resume text", result.Content)
	assert.Equal(t, 30, result.Usage.TotalTokens)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, DefaultModel, captured.Model)
	assert.Equal(t, 4000, captured.MaxTokens)
	assert.InDelta(t, 0.4, captured.Temperature, 0.001)
}

func TestComplete_NotConfigured_NoNetworkCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewGroqClient(Config{APIKey: "your-groq-api-key", BaseURL: server.URL})
	result := client.Complete(context.Background(), ChatRequest("s", "u"))

	assert.False(t, result.Success)
	assert.Equal(t, ErrorNotConfigured, result.ErrorReason)
	assert.False(t, called)
}

func TestComplete_ClientError_NotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid model", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.Complete(context.Background(), ChatRequest("s", "u"))

	assert.False(t, result.Success)
	assert.Equal(t, ErrorProvider, result.ErrorReason)
	assert.Contains(t, result.Detail, "invalid model")
	assert.Equal(t, 1, calls)
}

func TestComplete_ServerError_RetriedThenSucceeds(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(completionBody("recovered")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.Complete(context.Background(), ChatRequest("s", "u"))

	require.True(t, result.Success)
	assert.Equal(t, "recovered", result.Content)
	assert.Equal(t, 2, calls)
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [], "usage": {}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result := client.Complete(context.Background(), ChatRequest("s", "u"))

	assert.False(t, result.Success)
	assert.Equal(t, ErrorProvider, result.ErrorReason)
	assert.Contains(t, result.Detail, "no choices")
}

func TestComplete_MockMode(t *testing.T) {
	client := NewGroqClient(Config{Mock: true})
	result := client.Complete(context.Background(), ChatRequest("s", "u"))

	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Content)
}

func TestHealth_Unconfigured(t *testing.T) {
	client := NewGroqClient(Config{})
	status := client.Health(context.Background())

	assert.False(t, status.Available)
	assert.False(t, status.Configured)
	assert.Equal(t, DefaultModel, status.Model)
	assert.Contains(t, status.Detail, "not configured")
}

func TestHealth_CachesProbeResult(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(completionBody("OK")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	first := client.Health(context.Background())
	second := client.Health(context.Background())

	assert.True(t, first.Available)
	assert.Equal(t, first.CheckedAt, second.CheckedAt)
	assert.Equal(t, 1, calls)
}
