package readiness

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/prepdeck/internal/srs"
	"github.com/abhisek/prepdeck/internal/store"
)

// Store is the persistence the readiness service reads.
type Store interface {
	GetMetrics(ctx context.Context, userID string) (*store.ProgressMetrics, error)
	ListQuestions(ctx context.Context, userID string) ([]srs.Question, error)
}

// Service computes readiness scores from stored progress.
type Service struct {
	store  Store
	config Config
	now    func() time.Time
}

// NewService creates a readiness service. An empty RequiredTopics in cfg
// makes coverage 0.
func NewService(st Store, cfg Config) *Service {
	return &Service{store: st, config: cfg, now: time.Now}
}

// WithClock returns a copy of s that reads time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now
	return &c
}

// Calculate returns userID's current readiness score.
func (s *Service) Calculate(ctx context.Context, userID string) (*Score, error) {
	var in Inputs

	m, err := s.store.GetMetrics(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		in.Correct, in.Incorrect = m.CorrectAnswers, m.IncorrectAnswers
	}

	in.Questions, err = s.store.ListQuestions(ctx, userID)
	if err != nil {
		return nil, err
	}

	score := Estimate(in, s.config, s.now())
	return &score, nil
}
