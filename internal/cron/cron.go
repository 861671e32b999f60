// Package cron runs periodic maintenance: refilling empty practice queues
// ahead of the learner and pruning old LLM request events.
package cron

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/prepdeck/internal/srs"
	"github.com/abhisek/prepdeck/internal/store"
)

// Job tags.
const (
	JobQueueWarm = "queue-warm"
	JobLLMPrune  = "llm-events-prune"
)

// Config sets job intervals.
type Config struct {
	WarmInterval      time.Duration `mapstructure:"warm_interval"`
	PruneInterval     time.Duration `mapstructure:"prune_interval"`
	LLMEventRetention time.Duration `mapstructure:"llm_event_retention"`
	Concurrency       int           `mapstructure:"concurrency"`
}

// DefaultConfig returns the standard job intervals.
func DefaultConfig() Config {
	return Config{
		WarmInterval:      30 * time.Minute,
		PruneInterval:     24 * time.Hour,
		LLMEventRetention: 30 * 24 * time.Hour,
		Concurrency:       4,
	}
}

// ObjectiveLister lists objectives. An empty userID lists all of them.
type ObjectiveLister interface {
	ListObjectives(ctx context.Context, userID string) ([]store.Objective, error)
}

// QuestionPicker returns the next question for an objective, generating one
// when its queue is empty.
type QuestionPicker interface {
	NextQuestion(ctx context.Context, userID, objectiveID string) (*srs.Question, error)
}

// EventPruner deletes LLM request events older than a cutoff.
type EventPruner interface {
	PruneLLMEvents(ctx context.Context, cutoff time.Time) (int64, error)
}

// WarmStats reports one queue-warm run.
type WarmStats struct {
	Objectives int
	Failed     int
}

// Runner owns the gocron scheduler.
type Runner struct {
	sched      *gocron.Scheduler
	cfg        Config
	objectives ObjectiveLister
	picker     QuestionPicker
	pruner     EventPruner
	log        logrus.FieldLogger
	now        func() time.Time
}

// New creates a Runner. Jobs are registered by Start.
func New(cfg Config, objectives ObjectiveLister, picker QuestionPicker, pruner EventPruner, log logrus.FieldLogger) *Runner {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Runner{
		sched:      gocron.NewScheduler(time.UTC),
		cfg:        cfg,
		objectives: objectives,
		picker:     picker,
		pruner:     pruner,
		log:        log,
		now:        time.Now,
	}
}

// Start registers the jobs and runs them in the background. Each job runs
// once immediately and then on its interval. ctx is passed to every run.
func (r *Runner) Start(ctx context.Context) error {
	if err := r.register(ctx); err != nil {
		return err
	}
	r.sched.StartAsync()
	r.log.WithFields(logrus.Fields{
		"warm_interval":  r.cfg.WarmInterval,
		"prune_interval": r.cfg.PruneInterval,
	}).Info("cron started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to return.
func (r *Runner) Stop() {
	r.sched.Stop()
	r.log.Info("cron stopped")
}

func (r *Runner) register(ctx context.Context) error {
	if r.cfg.WarmInterval <= 0 || r.cfg.PruneInterval <= 0 {
		return fmt.Errorf("cron intervals must be positive")
	}

	_, err := r.sched.Every(r.cfg.WarmInterval).Tag(JobQueueWarm).SingletonMode().Do(func() {
		stats, err := r.WarmQueues(ctx)
		log := r.log.WithFields(logrus.Fields{"objectives": stats.Objectives, "failed": stats.Failed})
		if err != nil {
			log.WithError(err).Error("queue warm failed")
			return
		}
		log.Debug("queue warm finished")
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", JobQueueWarm, err)
	}

	_, err = r.sched.Every(r.cfg.PruneInterval).Tag(JobLLMPrune).SingletonMode().Do(func() {
		n, err := r.PruneEvents(ctx)
		if err != nil {
			r.log.WithError(err).Error("llm event prune failed")
			return
		}
		r.log.WithField("deleted", n).Debug("llm events pruned")
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", JobLLMPrune, err)
	}
	return nil
}

// WarmQueues asks for the next question of every objective so that empty
// queues get a generated question before the learner asks. Failures for
// single objectives are logged and counted; only listing errors are returned.
func (r *Runner) WarmQueues(ctx context.Context) (WarmStats, error) {
	objectives, err := r.objectives.ListObjectives(ctx, "")
	if err != nil {
		return WarmStats{}, err
	}

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for _, o := range objectives {
		g.Go(func() error {
			if _, err := r.picker.NextQuestion(gctx, o.UserID, o.ID); err != nil {
				failed.Add(1)
				r.log.WithError(err).WithFields(logrus.Fields{
					"user_id":      o.UserID,
					"objective_id": o.ID,
				}).Warn("queue warm failed for objective")
			}
			return nil
		})
	}
	_ = g.Wait()

	return WarmStats{Objectives: len(objectives), Failed: int(failed.Load())}, nil
}

// PruneEvents deletes LLM request events older than the retention.
func (r *Runner) PruneEvents(ctx context.Context) (int64, error) {
	return r.pruner.PruneLLMEvents(ctx, r.now().Add(-r.cfg.LLMEventRetention))
}
