package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepdeck/internal/llm"
	"github.com/abhisek/prepdeck/internal/ratelimit"
	"github.com/abhisek/prepdeck/internal/store"
)

// isolate runs the test in an empty directory with no config or .env file.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("HOME", dir)
	t.Setenv("PREPDECK_DB", filepath.Join(dir, "default.db"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)
	t.Setenv("USER", "alice")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, store.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, filepath.Join(dir, "default.db"), cfg.Database.DSN)
	assert.Equal(t, []string{"algorithms", "data-structures", "system-design"}, cfg.Readiness.RequiredTopics)
	assert.Equal(t, ratelimit.BackendMemory, cfg.RateLimit.Backend)
	assert.Equal(t, 20, cfg.RateLimit.Limit)
	assert.Equal(t, time.Hour, cfg.RateLimit.Window)
	assert.Equal(t, 30*time.Minute, cfg.Cron.WarmInterval)
	assert.Equal(t, 4, cfg.Cron.Concurrency)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, GeneratorLLM, cfg.QuestionGen.Backend)
	assert.Equal(t, 25, cfg.QuestionGen.MaxExistingQuestions)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
user: bob
database:
  driver: postgres
  dsn: postgres://localhost/prepdeck
readiness:
  required_topics: [go, kubernetes]
ratelimit:
  backend: redis
  redis_addr: localhost:6379
  window: 10m
cron:
  warm_interval: 5m
llm:
  provider: anthropic
  anthropic:
    model: claude-haiku
`), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "bob", cfg.User)
	assert.Equal(t, store.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/prepdeck", cfg.Database.DSN)
	assert.Equal(t, []string{"go", "kubernetes"}, cfg.Readiness.RequiredTopics)
	assert.Equal(t, "localhost:6379", cfg.RateLimit.RedisAddr)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 5*time.Minute, cfg.Cron.WarmInterval)
	assert.Equal(t, 24*time.Hour, cfg.Cron.PruneInterval, "unset keys keep defaults")
	assert.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(New(), filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PREPDECK_USER", "carol")
	t.Setenv("PREPDECK_LOG_LEVEL", "debug")
	t.Setenv("PREPDECK_RATELIMIT_LIMIT", "3")
	t.Setenv("PREPDECK_ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "carol", cfg.User)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.RateLimit.Limit)
	assert.Equal(t, "sk-test", cfg.LLM.Anthropic.APIKey)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PREPDECK_QUESTIONGEN_BACKEND=static\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PREPDECK_QUESTIONGEN_BACKEND") })

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, GeneratorStatic, cfg.QuestionGen.Backend)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			User:        "u",
			Database:    store.Config{Driver: store.DriverSQLite},
			RateLimit:   ratelimit.Config{Backend: ratelimit.BackendMemory},
			QuestionGen: QuestionGenConfig{Backend: GeneratorLLM},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty user", func(c *Config) { c.User = "" }},
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = store.DriverPostgres }},
		{"redis without addr", func(c *Config) { c.RateLimit.Backend = ratelimit.BackendRedis }},
		{"bad generator", func(c *Config) { c.QuestionGen.Backend = "magic" }},
	}

	c := valid()
	require.NoError(t, c.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestGeneratorConfig(t *testing.T) {
	gc := QuestionGenConfig{MaxTokens: 100, Temperature: 0.2, MaxExistingQuestions: 5}.GeneratorConfig()
	assert.Equal(t, 100, gc.MaxTokens)
	assert.Equal(t, 0.2, gc.Temperature)
	assert.Equal(t, 5, gc.MaxExistingQuestions)
	assert.Len(t, gc.Validators, 2)
}
