// Package app wires configuration into the prepdeck services. One App is
// built per process and closed on exit.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/prepdeck/internal/config"
	"github.com/abhisek/prepdeck/internal/cron"
	"github.com/abhisek/prepdeck/internal/importer"
	"github.com/abhisek/prepdeck/internal/llm"
	"github.com/abhisek/prepdeck/internal/progress"
	"github.com/abhisek/prepdeck/internal/questiongen"
	"github.com/abhisek/prepdeck/internal/ratelimit"
	"github.com/abhisek/prepdeck/internal/readiness"
	"github.com/abhisek/prepdeck/internal/scheduler"
	"github.com/abhisek/prepdeck/internal/store"
)

// App holds the services for one process.
type App struct {
	Config    *config.Config
	Log       logrus.FieldLogger
	Store     *store.Store
	Generator questiongen.Generator
	Scheduler *scheduler.Service
	Progress  *progress.Service
	Readiness *readiness.Service
	Importer  *importer.Importer

	closers []func() error
}

// New opens storage and builds every service from cfg. The caller must
// call Close.
func New(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*App, error) {
	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := &App{Config: cfg, Log: log, Store: st}
	a.closers = append(a.closers, st.Close)

	gen, err := a.newGenerator(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Generator = gen

	a.Scheduler = scheduler.NewService(st, gen, scheduler.WithLogger(log))
	a.Progress = progress.NewService(st, progress.WithLogger(log))
	a.Readiness = readiness.NewService(st, cfg.Readiness)
	a.Importer = importer.New(st, log)
	return a, nil
}

// Cron returns a Runner for the periodic jobs.
func (a *App) Cron() *cron.Runner {
	return cron.New(a.Config.Cron, a.Store, a.Scheduler, a.Store, a.Log)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// newGenerator builds the rate-limited question generator. The LLM backend
// falls back to the static bank when no provider key is configured.
func (a *App) newGenerator(ctx context.Context) (questiongen.Generator, error) {
	cfg := a.Config

	var gen questiongen.Generator
	switch cfg.QuestionGen.Backend {
	case config.GeneratorStatic:
		gen = questiongen.NewStaticGenerator()
	default:
		llmCfg, ok := llm.DiscoverConfig(cfg.LLM)
		if !ok {
			a.Log.Warn("no LLM provider configured, using the built-in question bank")
			gen = questiongen.NewStaticGenerator()
			break
		}
		provider, err := llm.NewProvider(ctx, llmCfg, a.Store, a.Log)
		if err != nil {
			return nil, fmt.Errorf("create LLM provider: %w", err)
		}
		a.Log.WithFields(logrus.Fields{
			"provider": llmCfg.Provider,
			"model":    provider.ModelID(),
		}).Debug("LLM provider ready")
		gen = questiongen.New(provider, cfg.QuestionGen.GeneratorConfig())
	}

	counter, err := a.newCounterStore(ctx)
	if err != nil {
		return nil, err
	}
	limiter := ratelimit.NewLimiter(counter, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	return ratelimit.WrapGenerator(gen, limiter), nil
}

func (a *App) newCounterStore(ctx context.Context) (ratelimit.CounterStore, error) {
	rl := a.Config.RateLimit
	if rl.Backend != ratelimit.BackendRedis {
		return ratelimit.NewMemoryStore(), nil
	}
	rs, err := ratelimit.DialRedis(ctx, rl.RedisAddr)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, rs.Close)
	return rs, nil
}
