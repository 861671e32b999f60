// Package scheduler picks the next question a learner should practice for an
// objective, generating a new one when nothing is left to practice.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/prepdeck/internal/questiongen"
	"github.com/abhisek/prepdeck/internal/srs"
	"github.com/abhisek/prepdeck/internal/store"
)

// CategoryGenerated marks questions created by the scheduler.
const CategoryGenerated = "generated"

// Store is the persistence the scheduler needs.
type Store interface {
	ObjectiveWithQuestions(ctx context.Context, userID, objectiveID string) (*store.Objective, []srs.Question, error)
	CreateQuestionInObjective(ctx context.Context, objectiveID string, q *srs.Question) error
}

// Service selects questions. It holds no per-request state.
type Service struct {
	store     Store
	generator questiongen.Generator
	log       logrus.FieldLogger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a scheduler over st that falls back to gen when an
// objective's queue is empty.
func NewService(st Store, gen questiongen.Generator, opts ...Option) *Service {
	s := &Service{
		store:     st,
		generator: gen,
		log:       logrus.StandardLogger(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Categorized returns the objective's questions split into review buckets.
func (s *Service) Categorized(ctx context.Context, userID, objectiveID string) (srs.Buckets, error) {
	_, questions, err := s.store.ObjectiveWithQuestions(ctx, userID, objectiveID)
	if err != nil {
		return srs.Buckets{}, err
	}
	return srs.Categorize(questions, s.now()), nil
}

// Queue returns the objective's questions in the order they should be
// practiced: to review, struggling, new, then learning.
func (s *Service) Queue(ctx context.Context, userID, objectiveID string) ([]srs.Question, error) {
	b, err := s.Categorized(ctx, userID, objectiveID)
	if err != nil {
		return nil, err
	}
	return b.Queue(), nil
}

// NextQuestion returns the question userID should practice next for
// objectiveID. When the objective has nothing to practice it generates,
// stores and returns a new question.
//
// Returns store.ErrNotFound when the objective does not exist or belongs to
// someone else, and an error matching ErrGenerationFailed when generation
// produces nothing.
func (s *Service) NextQuestion(ctx context.Context, userID, objectiveID string) (*srs.Question, error) {
	obj, questions, err := s.store.ObjectiveWithQuestions(ctx, userID, objectiveID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if queue := srs.Categorize(questions, now).Queue(); len(queue) > 0 {
		q := queue[0]
		return &q, nil
	}

	log := s.log.WithFields(logrus.Fields{
		"user_id":      userID,
		"objective_id": objectiveID,
	})
	log.WithField("existing", len(questions)).Info("practice queue empty, generating question")

	existing := make([]string, 0, len(questions))
	for _, q := range questions {
		existing = append(existing, q.Content)
	}

	generated, err := s.generator.Generate(ctx, questiongen.GenerateInput{
		UserID:            userID,
		Role:              obj.Name,
		Difficulty:        questiongen.DifficultyMedium,
		Count:             1,
		ExistingQuestions: existing,
	})
	if err == nil && len(generated) == 0 {
		err = errors.New("generator returned no questions")
	}
	if err != nil {
		log.WithError(err).Warn("question generation failed")
		return nil, &GenerationError{ObjectiveID: objectiveID, Err: err}
	}

	q := newGeneratedQuestion(userID, generated[0], now)
	if err := s.store.CreateQuestionInObjective(ctx, objectiveID, &q); err != nil {
		return nil, err
	}

	log.WithField("question_id", q.ID).Info("generated question stored")
	return &q, nil
}

func newGeneratedQuestion(userID string, g questiongen.Question, now time.Time) srs.Question {
	q := srs.NewQuestion("", userID, g.Text, g.IdealAnswerSummary)
	q.Topics = g.Topics
	if q.Topics == nil {
		q.Topics = []string{}
	}
	q.Category = CategoryGenerated
	if g.Difficulty != "" {
		q.Difficulty = g.Difficulty
	}
	q.CreatedAt = now
	return q
}
