package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures a provider. It is filled in by the
// application config loader.
type Config struct {
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// ProviderConfig is the per-provider credential and model. BaseURL is
// optional and mostly used to point at OpenAI-compatible gateways.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig has generation disabled and per-provider default models.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderNone,
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// standardKeyEnv lists the vendor API key variables in discovery order.
var standardKeyEnv = []struct {
	provider string
	env      string
}{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// Discover fills in a provider from the vendors' standard API key
// variables when none was configured explicitly. It reports whether a
// key was found.
func (c *Config) Discover() bool {
	if c.Provider != "" && c.Provider != ProviderNone {
		return false
	}
	for _, k := range standardKeyEnv {
		key := os.Getenv(k.env)
		if key == "" {
			continue
		}
		c.Provider = k.provider
		c.provider(k.provider).APIKey = key
		return true
	}
	return false
}

// Enabled reports whether a real or mock provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

func (c *Config) provider(name string) *ProviderConfig {
	switch name {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// Validate checks the provider name and that it has an API key.
func (c Config) Validate() error {
	switch c.Provider {
	case "", ProviderNone, ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.provider(c.Provider).APIKey == "" {
			return fmt.Errorf("%s_api_key is required for the %s provider", c.Provider, c.Provider)
		}
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("llm retry attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
