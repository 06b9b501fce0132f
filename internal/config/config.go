// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/cvitae/cvitae/internal/llm"
)

// Defaults for optional settings.
const (
	DefaultPort                  = 8080
	DefaultMaxConcurrentCompiles = 4
)

// Config holds everything the service needs to run. The LLM settings
// are nested so the llm package owns its own environment contract.
type Config struct {
	Port                  int
	DatabaseURL           string
	CompilerURL           string
	MaxConcurrentCompiles int
	LLM                   llm.Config
}

// FromEnv reads configuration from the environment. Call godotenv before
// this if a .env file should participate.
func FromEnv() Config {
	return Config{
		Port:                  envInt("PORT", DefaultPort),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		CompilerURL:           os.Getenv("LATEX_SERVICE_URL"),
		MaxConcurrentCompiles: envInt("MAX_CONCURRENT_COMPILES", DefaultMaxConcurrentCompiles),
		LLM:                   llm.ConfigFromEnv(),
	}
}

// Validate checks settings the service cannot run without. A missing or
// placeholder LLM key is deliberately not an error here: the pipeline
// degrades to fallback behavior instead, so startup only warns.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be in 1-65535, got %d", c.Port)
	}
	if c.CompilerURL == "" {
		return fmt.Errorf("config error: LATEX_SERVICE_URL is required")
	}
	parsed, err := url.Parse(c.CompilerURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("config error: LATEX_SERVICE_URL must be an http(s) URL, got %q", c.CompilerURL)
	}
	if c.MaxConcurrentCompiles <= 0 {
		return fmt.Errorf("config error: MAX_CONCURRENT_COMPILES must be positive, got %d", c.MaxConcurrentCompiles)
	}
	return nil
}

// Warnings returns non-fatal configuration problems worth logging at
// startup.
func (c Config) Warnings() []string {
	var warnings []string
	if llm.IsPlaceholderKey(c.LLM.APIKey) {
		warnings = append(warnings, "GROQ_API_KEY is not configured; tailoring will use fallback heuristics")
	}
	if c.DatabaseURL == "" {
		warnings = append(warnings, "DATABASE_URL is not configured; resumes will be stored in memory only")
	}
	return warnings
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
