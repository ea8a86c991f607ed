// Package llm provides the remote completion provider abstraction, its OpenAI and
// Gemini adapters, and the lazily-initialized resolver that hands one of them out.
package llm

import (
	"strings"
	"time"
)

// Provider names a supported remote completion backend
type ProviderName string

// Supported providers
const (
	// ProviderOpenAI is the OpenAI chat completions API (default)
	ProviderOpenAI ProviderName = "openai"
	// ProviderGemini is the Google Gemini API
	ProviderGemini ProviderName = "gemini"
)

// Default models per provider
const (
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.5-flash"
)

// DefaultRequestTimeout bounds the HTTP client underneath an adapter. The
// orchestrator applies its own, much shorter, completion timeout on top.
const DefaultRequestTimeout = 30 * time.Second

// Config holds the provider selection and credentials for the application
type Config struct {
	Provider     ProviderName
	Model        string
	OpenAIAPIKey string
	OpenAIURL    string
	GeminiAPIKey string
}

// DefaultConfig returns the default configuration (OpenAI, no credentials)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
	}
}

// ParseProviderName normalizes a configured provider name.
// Unknown or empty values fall back to OpenAI.
func ParseProviderName(s string) ProviderName {
	switch ProviderName(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderGemini:
		return ProviderGemini
	default:
		return ProviderOpenAI
	}
}

// GetModel returns the configured model, or the selected provider's default
func (c *Config) GetModel() string {
	if strings.TrimSpace(c.Model) != "" {
		return c.Model
	}
	if c.Provider == ProviderGemini {
		return DefaultGeminiModel
	}
	return DefaultOpenAIModel
}

// APIKey returns the credential for the selected provider
func (c *Config) APIKey() string {
	if c.Provider == ProviderGemini {
		return strings.TrimSpace(c.GeminiAPIKey)
	}
	return strings.TrimSpace(c.OpenAIAPIKey)
}

// HasCredentials reports whether the selected provider has a credential configured
func (c *Config) HasCredentials() bool {
	return c.APIKey() != ""
}
