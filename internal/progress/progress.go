// Package progress records review outcomes and aggregates them into per-user
// metrics and analytics.
package progress

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/prepdeck/internal/srs"
	"github.com/abhisek/prepdeck/internal/store"
)

// RecentReviewLimit caps Analytics.RecentReviews.
const RecentReviewLimit = 10

// Store is the persistence the progress service needs.
type Store interface {
	RecordReview(ctx context.Context, r store.Review) error
	SaveReviewedQuestion(ctx context.Context, q srs.Question, r store.Review) error
	GetMetrics(ctx context.Context, userID string) (*store.ProgressMetrics, error)
	GetQuestion(ctx context.Context, userID, id string) (*srs.Question, error)
	ListQuestions(ctx context.Context, userID string) ([]srs.Question, error)
	ListReviews(ctx context.Context, userID string) ([]store.Review, error)
	ListTopicMastery(ctx context.Context, userID string) ([]store.TopicMastery, error)
}

// Overall is a user's running review totals.
type Overall struct {
	TotalQuestions   int `json:"totalQuestions"`
	CorrectAnswers   int `json:"correctAnswers"`
	IncorrectAnswers int `json:"incorrectAnswers"`
	MasteryScore     int `json:"masteryScore"`
}

// Metrics is Overall plus the next review date of each of the user's
// questions.
type Metrics struct {
	Overall
	NextReviewDates map[string]time.Time `json:"nextReviewDates"`
}

// TrendPoint is the cumulative mastery score at the end of one UTC day.
type TrendPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// RecentReview is one ledger entry in Analytics.
type RecentReview struct {
	QuestionID string    `json:"question_id"`
	Remembered bool      `json:"remembered"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// Analytics summarizes a user's review history.
type Analytics struct {
	OverallProgress Overall              `json:"overallProgress"`
	ProgressTrend   []TrendPoint         `json:"progressTrend"`
	RecentReviews   []RecentReview       `json:"recentReviews"`
	TopicMastery    []store.TopicMastery `json:"topicMastery"`
	CalculatedAt    time.Time            `json:"calculatedAt"`
}

// Service records reviews and computes progress.
type Service struct {
	store Store
	log   logrus.FieldLogger
	now   func() time.Time
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

// NewService creates a progress service backed by st.
func NewService(st Store, opts ...Option) *Service {
	s := &Service{store: st, log: logrus.StandardLogger(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordReview appends a review to the ledger and counts it in the user's
// metrics, atomically.
func (s *Service) RecordReview(ctx context.Context, userID, questionID string, remembered bool) error {
	err := s.store.RecordReview(ctx, store.Review{
		UserID:     userID,
		QuestionID: questionID,
		Remembered: remembered,
		ReviewedAt: s.now(),
	})
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":     userID,
		"question_id": questionID,
		"remembered":  remembered,
	}).Debug("review recorded")
	return nil
}

// SubmitReview grades a question with score, then stores its new review
// state, the ledger entry and the metrics update in one transaction.
// It returns the updated question.
func (s *Service) SubmitReview(ctx context.Context, userID, questionID string, score int) (*srs.Question, error) {
	q, err := s.store.GetQuestion(ctx, userID, questionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	updated := srs.ApplyReview(*q, score, now)
	err = s.store.SaveReviewedQuestion(ctx, updated, store.Review{
		UserID:     userID,
		QuestionID: questionID,
		Remembered: srs.Passed(score),
		ReviewedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":     userID,
		"question_id": questionID,
		"score":       score,
		"interval":    updated.ReviewInterval,
		"ease":        updated.ReviewEase,
	}).Debug("review submitted")
	return &updated, nil
}

// overall returns the user's totals, zeroed before the first review.
func (s *Service) overall(ctx context.Context, userID string) (Overall, bool, error) {
	m, err := s.store.GetMetrics(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return Overall{}, false, nil
	}
	if err != nil {
		return Overall{}, false, err
	}
	return Overall{
		TotalQuestions:   m.TotalQuestions,
		CorrectAnswers:   m.CorrectAnswers,
		IncorrectAnswers: m.IncorrectAnswers,
		MasteryScore:     srs.MasteryScore(m.CorrectAnswers, m.IncorrectAnswers),
	}, true, nil
}

// UserMetrics returns the user's totals and when each question is next due.
func (s *Service) UserMetrics(ctx context.Context, userID string) (*Metrics, error) {
	o, _, err := s.overall(ctx, userID)
	if err != nil {
		return nil, err
	}

	questions, err := s.store.ListQuestions(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dates := make(map[string]time.Time, len(questions))
	for _, q := range questions {
		dates[q.ID] = srs.NextReviewDate(q, now)
	}
	return &Metrics{Overall: o, NextReviewDates: dates}, nil
}

// Analytics returns the user's totals, a daily cumulative mastery trend, the
// most recent reviews and the externally maintained topic mastery levels.
// A user with no metrics gets zeroed totals and empty lists.
func (s *Service) Analytics(ctx context.Context, userID string) (*Analytics, error) {
	now := s.now()
	out := &Analytics{
		ProgressTrend: []TrendPoint{},
		RecentReviews: []RecentReview{},
		TopicMastery:  []store.TopicMastery{},
		CalculatedAt:  now,
	}

	o, ok, err := s.overall(ctx, userID)
	if err != nil || !ok {
		return out, err
	}
	out.OverallProgress = o

	reviews, err := s.store.ListReviews(ctx, userID)
	if err != nil {
		return nil, err
	}
	out.ProgressTrend = Trend(reviews)
	out.RecentReviews = Recent(reviews, RecentReviewLimit)

	topics, err := s.store.ListTopicMastery(ctx, userID)
	if err != nil {
		return nil, err
	}
	if topics != nil {
		out.TopicMastery = topics
	}
	return out, nil
}

// Trend walks reviews in order and emits one point per distinct UTC day with
// the cumulative mastery score after that day's last review.
func Trend(reviews []store.Review) []TrendPoint {
	out := []TrendPoint{}
	correct, total := 0, 0
	for _, r := range reviews {
		total++
		if r.Remembered {
			correct++
		}
		p := TrendPoint{
			Date:  r.ReviewedAt.UTC().Format(time.DateOnly),
			Score: srs.MasteryScore(correct, total-correct),
		}
		if n := len(out); n > 0 && out[n-1].Date == p.Date {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

// Recent returns up to limit reviews, newest first. reviews must be in
// chronological order.
func Recent(reviews []store.Review, limit int) []RecentReview {
	out := []RecentReview{}
	for i := len(reviews) - 1; i >= 0 && len(out) < limit; i-- {
		r := reviews[i]
		out = append(out, RecentReview{
			QuestionID: r.QuestionID,
			Remembered: r.Remembered,
			ReviewedAt: r.ReviewedAt,
		})
	}
	return out
}
