// Package config loads prepdeck configuration from defaults, an optional
// config file, a .env file and PREPDECK_* environment variables, in
// increasing order of precedence. Command-line flags bound to the viper
// instance override all of them.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/prepdeck/internal/cron"
	"github.com/abhisek/prepdeck/internal/llm"
	"github.com/abhisek/prepdeck/internal/logging"
	"github.com/abhisek/prepdeck/internal/questiongen"
	"github.com/abhisek/prepdeck/internal/ratelimit"
	"github.com/abhisek/prepdeck/internal/readiness"
	"github.com/abhisek/prepdeck/internal/store"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PREPDECK"

// Generator backends.
const (
	GeneratorLLM    = "llm"
	GeneratorStatic = "static"
)

// Config is the full application configuration.
type Config struct {
	// User is the learner id commands act on.
	User string `mapstructure:"user"`

	Database    store.Config      `mapstructure:"database"`
	Log         logging.Config    `mapstructure:"log"`
	Readiness   readiness.Config  `mapstructure:"readiness"`
	RateLimit   ratelimit.Config  `mapstructure:"ratelimit"`
	Cron        cron.Config       `mapstructure:"cron"`
	LLM         llm.Config        `mapstructure:"llm"`
	QuestionGen QuestionGenConfig `mapstructure:"questiongen"`
}

// QuestionGenConfig selects and tunes the question generator.
type QuestionGenConfig struct {
	// Backend is "llm" or "static". The llm backend falls back to static
	// when no provider key can be found.
	Backend              string  `mapstructure:"backend"`
	MaxTokens            int     `mapstructure:"max_tokens"`
	Temperature          float64 `mapstructure:"temperature"`
	MaxExistingQuestions int     `mapstructure:"max_existing_questions"`
}

// GeneratorConfig converts c into a questiongen.Config with the default
// validator chain.
func (c QuestionGenConfig) GeneratorConfig() questiongen.Config {
	cfg := questiongen.DefaultConfig()
	cfg.MaxTokens = c.MaxTokens
	cfg.Temperature = c.Temperature
	cfg.MaxExistingQuestions = c.MaxExistingQuestions
	return cfg
}

// New returns a viper instance with defaults and environment binding set up.
// Callers bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads configuration into a Config. file, when set, must exist;
// otherwise prepdeck.{yaml,toml,json} is looked up in the working directory
// and the user config directory. A .env file in the working directory is
// loaded into the environment first without overriding variables already set.
func Load(v *viper.Viper, file string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("prepdeck")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "prepdeck"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.LLM = llm.ConfigFromEnv(cfg.LLM)
	if cfg.Database.Driver == store.DriverSQLite && cfg.Database.DSN == "" {
		path, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.Database.DSN = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that have a fixed set of choices.
func (c *Config) Validate() error {
	if c.User == "" {
		return fmt.Errorf("user must not be empty")
	}
	switch c.Database.Driver {
	case store.DriverSQLite:
	case store.DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	switch c.RateLimit.Backend {
	case ratelimit.BackendMemory:
	case ratelimit.BackendRedis:
		if c.RateLimit.RedisAddr == "" {
			return fmt.Errorf("ratelimit.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown rate limit backend %q", c.RateLimit.Backend)
	}
	switch c.QuestionGen.Backend {
	case GeneratorLLM, GeneratorStatic:
	default:
		return fmt.Errorf("unknown question generator backend %q", c.QuestionGen.Backend)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("user", defaultUser())

	v.SetDefault("database.driver", store.DriverSQLite)
	v.SetDefault("database.dsn", "")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", logging.FormatText)

	v.SetDefault("readiness.required_topics", readiness.DefaultConfig().RequiredTopics)

	rl := ratelimit.DefaultConfig()
	v.SetDefault("ratelimit.backend", rl.Backend)
	v.SetDefault("ratelimit.redis_addr", "")
	v.SetDefault("ratelimit.limit", rl.Limit)
	v.SetDefault("ratelimit.window", rl.Window)

	cr := cron.DefaultConfig()
	v.SetDefault("cron.warm_interval", cr.WarmInterval)
	v.SetDefault("cron.prune_interval", cr.PruneInterval)
	v.SetDefault("cron.llm_event_retention", cr.LLMEventRetention)
	v.SetDefault("cron.concurrency", cr.Concurrency)

	lc := llm.DefaultConfig()
	v.SetDefault("llm.provider", lc.Provider)
	v.SetDefault("llm.anthropic.model", lc.Anthropic.Model)
	v.SetDefault("llm.openai.model", lc.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.model", lc.Gemini.Model)
	v.SetDefault("llm.openrouter.model", lc.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", lc.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", lc.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", lc.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", lc.Retry.Multiplier)
	v.SetDefault("llm.timeout", lc.Timeout)

	qg := questiongen.DefaultConfig()
	v.SetDefault("questiongen.backend", GeneratorLLM)
	v.SetDefault("questiongen.max_tokens", qg.MaxTokens)
	v.SetDefault("questiongen.temperature", qg.Temperature)
	v.SetDefault("questiongen.max_existing_questions", qg.MaxExistingQuestions)
}

// defaultUser is the OS user name, so a single learner never has to pass
// --user.
func defaultUser() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(key); u != "" {
			return u
		}
	}
	return "default"
}
