package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string `mapstructure:"provider"`

	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration `mapstructure:"timeout"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults. Question generation
// wants a capable model, so the defaults lean toward mid-tier models.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4.1-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv overlays PREPDECK_* environment variables on cfg.
func ConfigFromEnv(cfg Config) Config {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Provider, "PREPDECK_LLM_PROVIDER")
	set(&cfg.Anthropic.APIKey, "PREPDECK_ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "PREPDECK_ANTHROPIC_MODEL")
	set(&cfg.Anthropic.BaseURL, "PREPDECK_ANTHROPIC_BASE_URL")
	set(&cfg.OpenAI.APIKey, "PREPDECK_OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "PREPDECK_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "PREPDECK_OPENAI_BASE_URL")
	set(&cfg.Gemini.APIKey, "PREPDECK_GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "PREPDECK_GEMINI_MODEL")
	set(&cfg.OpenRouter.APIKey, "PREPDECK_OPENROUTER_API_KEY")
	set(&cfg.OpenRouter.Model, "PREPDECK_OPENROUTER_MODEL")

	return cfg
}

// DiscoverConfig checks standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter) and selects the first provider
// whose key is found. Keys already present in cfg win over discovery.
// Returns false if no provider could be selected.
func DiscoverConfig(cfg Config) (Config, bool) {
	if cfg.Validate() == nil {
		return cfg, true
	}

	candidates := []struct {
		provider string
		env      string
		key      *string
	}{
		{ProviderGemini, "GEMINI_API_KEY", &cfg.Gemini.APIKey},
		{ProviderOpenAI, "OPENAI_API_KEY", &cfg.OpenAI.APIKey},
		{ProviderAnthropic, "ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey},
		{ProviderOpenRouter, "OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey},
	}
	for _, c := range candidates {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.provider
			*c.key = k
			return cfg, true
		}
	}

	return cfg, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("PREPDECK_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("PREPDECK_OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("PREPDECK_GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("PREPDECK_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
