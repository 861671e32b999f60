package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/prepdeck/internal/config"
	"github.com/abhisek/prepdeck/internal/cron"
	"github.com/abhisek/prepdeck/internal/llm"
	"github.com/abhisek/prepdeck/internal/logging"
	"github.com/abhisek/prepdeck/internal/questiongen"
	"github.com/abhisek/prepdeck/internal/ratelimit"
	"github.com/abhisek/prepdeck/internal/readiness"
	"github.com/abhisek/prepdeck/internal/scheduler"
	"github.com/abhisek/prepdeck/internal/store"
)

func testConfig(backend string) *config.Config {
	return &config.Config{
		User:        "u1",
		Database:    store.Config{Driver: store.DriverSQLite, DSN: ":memory:"},
		Readiness:   readiness.DefaultConfig(),
		RateLimit:   ratelimit.Config{Backend: ratelimit.BackendMemory, Limit: 1, Window: time.Hour},
		Cron:        cron.DefaultConfig(),
		LLM:         llm.DefaultConfig(),
		QuestionGen: config.QuestionGenConfig{Backend: backend},
	}
}

func clearProviderKeys(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestNew_EndToEnd(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(config.GeneratorStatic), logging.Discard())
	require.NoError(t, err)
	defer a.Close()

	obj := &store.Objective{UserID: "u1", Name: "Backend Engineer"}
	require.NoError(t, a.Store.CreateObjective(ctx, obj))

	q, err := a.Scheduler.NextQuestion(ctx, "u1", obj.ID)
	require.NoError(t, err)
	assert.Equal(t, scheduler.CategoryGenerated, q.Category)

	updated, err := a.Progress.SubmitReview(ctx, "u1", q.ID, 90)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ReviewCount)

	m, err := a.Progress.UserMetrics(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 100, m.MasteryScore)

	score, err := a.Readiness.Calculate(ctx, "u1")
	require.NoError(t, err)
	assert.Greater(t, score.Overall, 0)

	assert.NotNil(t, a.Cron())
}

func TestNew_RateLimitedGeneration(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(config.GeneratorStatic), logging.Discard())
	require.NoError(t, err)
	defer a.Close()

	first := &store.Objective{UserID: "u1", Name: "A"}
	second := &store.Objective{UserID: "u1", Name: "B"}
	require.NoError(t, a.Store.CreateObjective(ctx, first))
	require.NoError(t, a.Store.CreateObjective(ctx, second))

	_, err = a.Scheduler.NextQuestion(ctx, "u1", first.ID)
	require.NoError(t, err)

	_, err = a.Scheduler.NextQuestion(ctx, "u1", second.ID)
	assert.ErrorIs(t, err, scheduler.ErrGenerationFailed)
	var limited *ratelimit.ErrLimited
	assert.ErrorAs(t, err, &limited)
}

func TestNew_LLMFallsBackToStatic(t *testing.T) {
	clearProviderKeys(t)
	ctx := context.Background()

	a, err := New(ctx, testConfig(config.GeneratorLLM), logging.Discard())
	require.NoError(t, err)
	defer a.Close()

	qs, err := a.Generator.Generate(ctx, questiongen.GenerateInput{UserID: "u1", Role: "SWE"})
	require.NoError(t, err)
	assert.Len(t, qs, 1)
}

func TestNew_BadDatabase(t *testing.T) {
	cfg := testConfig(config.GeneratorStatic)
	cfg.Database.Driver = "oracle"
	_, err := New(context.Background(), cfg, logging.Discard())
	assert.Error(t, err)
}
