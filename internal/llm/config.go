// Package llm provides the Groq chat-completion client used by the
// analysis and tailoring stages.
package llm

import (
	"os"
	"strings"
	"time"
)

// DefaultModel is the Groq model used for all completion presets.
const DefaultModel = "llama3-8b-8192"

// DefaultBaseURL is the Groq OpenAI-compatible API root.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultTimeout bounds a single completion attempt.
const DefaultTimeout = 30 * time.Second

// DefaultMaxRetries is the number of attempts for retryable provider errors.
const DefaultMaxRetries = 3

// placeholderKeys are values that mean "no key configured" rather than a
// real credential. Deployment templates ship with these.
var placeholderKeys = []string{
	"your-groq-api-key",
	"changeme",
}

// minKeyLength is the shortest plausible Groq API key. Anything shorter is
// treated as unconfigured.
const minKeyLength = 20

// Config holds client configuration, normally read from the environment.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	Mock       bool
}

// ConfigFromEnv builds a Config from GROQ_* environment variables,
// applying defaults for anything unset.
func ConfigFromEnv() Config {
	cfg := Config{
		APIKey:     os.Getenv("GROQ_API_KEY"),
		BaseURL:    os.Getenv("GROQ_BASE_URL"),
		Model:      os.Getenv("GROQ_MODEL"),
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		Mock:       os.Getenv("GROQ_MOCK") == "1",
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return cfg
}

// Configured reports whether the config carries a usable API key.
// Placeholder values from deployment templates do not count.
func (c Config) Configured() bool {
	return !IsPlaceholderKey(c.APIKey)
}

// IsPlaceholderKey reports whether the key is absent or a template
// placeholder: empty, a known placeholder string, an unexpanded
// ${VAR} reference, or too short to be a real key.
func IsPlaceholderKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return true
	}
	if strings.HasPrefix(key, "${") {
		return true
	}
	if len(key) < minKeyLength {
		return true
	}
	lower := strings.ToLower(key)
	for _, p := range placeholderKeys {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
