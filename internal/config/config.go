// Package config defines careerquest's configuration and how it is loaded.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/careerquest/internal/games"
	"github.com/abhisek/careerquest/internal/llm"
	"github.com/abhisek/careerquest/internal/skills"
)

// NoDefaultSkill disables crediting unknown games when used as
// default_skill.
const NoDefaultSkill = "none"

// Config contains process configuration. Keys are flat so that every field
// maps to one CAREERQUEST_ environment variable.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is json or console.
	LogFormat string `koanf:"log_format"`

	// DB is the SQLite path. Empty uses the per-user data directory.
	DB string `koanf:"db"`

	// Addr is the listen address for serve.
	Addr string `koanf:"addr"`

	// ScoringMode is uniform or primary-split.
	ScoringMode string `koanf:"scoring_mode"`
	// DefaultSkill receives XP for unknown game IDs; "none" disables it.
	DefaultSkill string `koanf:"default_skill"`

	// CareersFile optionally replaces the built-in career catalog.
	CareersFile string `koanf:"careers_file"`

	InsightCacheSize int `koanf:"insight_cache_size"`
	RecentSessions   int `koanf:"recent_sessions"`

	// LLMProvider is anthropic, openai, gemini, openrouter, mock or none.
	// Empty discovers a provider from the vendors' API key variables.
	LLMProvider     string        `koanf:"llm_provider"`
	LLMTimeout      time.Duration `koanf:"llm_timeout"`
	LLMMaxAttempts  int           `koanf:"llm_max_attempts"`
	LLMRetryInitial time.Duration `koanf:"llm_retry_initial"`
	LLMRetryMax     time.Duration `koanf:"llm_retry_max"`

	AnthropicAPIKey  string `koanf:"anthropic_api_key"`
	AnthropicModel   string `koanf:"anthropic_model"`
	OpenAIAPIKey     string `koanf:"openai_api_key"`
	OpenAIModel      string `koanf:"openai_model"`
	OpenAIBaseURL    string `koanf:"openai_base_url"`
	GeminiAPIKey     string `koanf:"gemini_api_key"`
	GeminiModel      string `koanf:"gemini_model"`
	OpenRouterAPIKey string `koanf:"openrouter_api_key"`
	OpenRouterModel  string `koanf:"openrouter_model"`
}

// New returns a Config holding the defaults.
func New() *Config {
	l := llm.DefaultConfig()
	return &Config{
		LogLevel:         "info",
		LogFormat:        "console",
		Addr:             ":8080",
		ScoringMode:      string(games.ScoringUniform),
		DefaultSkill:     games.DefaultSkill,
		InsightCacheSize: 64,
		RecentSessions:   5,
		LLMTimeout:       l.Timeout,
		LLMMaxAttempts:   l.Retry.MaxAttempts,
		LLMRetryInitial:  l.Retry.InitialWait,
		LLMRetryMax:      l.Retry.MaxWait,
		AnthropicModel:   l.Anthropic.Model,
		OpenAIModel:      l.OpenAI.Model,
		GeminiModel:      l.Gemini.Model,
		OpenRouterModel:  l.OpenRouter.Model,
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level %q (want debug, info, warn or error)", c.LogLevel))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log_format %q (want json or console)", c.LogFormat))
	}
	if _, err := games.ParseScoringMode(c.ScoringMode); err != nil {
		errs = append(errs, err)
	}
	if c.DefaultSkill != NoDefaultSkill && !skills.Exists(c.DefaultSkill) {
		errs = append(errs, fmt.Errorf("default_skill %q is not in the skill catalog", c.DefaultSkill))
	}
	if c.InsightCacheSize < 0 {
		errs = append(errs, fmt.Errorf("insight_cache_size must not be negative"))
	}
	if c.RecentSessions < 0 {
		errs = append(errs, fmt.Errorf("recent_sessions must not be negative"))
	}
	if c.LLMTimeout < 0 {
		errs = append(errs, fmt.Errorf("llm_timeout must not be negative"))
	}
	if c.LLMProvider != "" {
		if err := c.LLM().Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Resolver builds the game resolver for the configured scoring.
func (c *Config) Resolver() *games.Resolver {
	mode, _ := games.ParseScoringMode(c.ScoringMode)
	def := c.DefaultSkill
	if def == NoDefaultSkill {
		def = ""
	}
	return games.NewResolver(games.WithMode(mode), games.WithDefaultSkill(def))
}

// LLM converts the flat keys into an llm.Config. With no provider set, the
// vendors' standard API key variables are consulted.
func (c *Config) LLM() llm.Config {
	l := llm.DefaultConfig()
	l.Provider = c.LLMProvider
	l.Timeout = c.LLMTimeout
	l.Retry.MaxAttempts = c.LLMMaxAttempts
	l.Retry.InitialWait = c.LLMRetryInitial
	l.Retry.MaxWait = c.LLMRetryMax

	l.Anthropic = llm.ProviderConfig{APIKey: c.AnthropicAPIKey, Model: c.AnthropicModel}
	l.OpenAI = llm.ProviderConfig{APIKey: c.OpenAIAPIKey, Model: c.OpenAIModel, BaseURL: c.OpenAIBaseURL}
	l.Gemini = llm.ProviderConfig{APIKey: c.GeminiAPIKey, Model: c.GeminiModel}
	l.OpenRouter.APIKey = c.OpenRouterAPIKey
	l.OpenRouter.Model = c.OpenRouterModel

	if c.LLMProvider == "" {
		l.Discover()
	}
	return l
}
