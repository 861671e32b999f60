// Package readiness turns a learner's review history into a single 0-100
// interview readiness score.
package readiness

import (
	"math"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/prepdeck/internal/srs"
)

// Weights and thresholds of the readiness score.
const (
	MasteryWeight     = 0.4
	ConsistencyWeight = 0.3
	CoverageWeight    = 0.2
	RecencyWeight     = 0.1

	// WeakEase marks a question the learner keeps failing.
	WeakEase = 1.5

	// WeakPenalty is subtracted from mastery when every question is weak.
	WeakPenalty = 30.0

	// RecencyHorizonDays is the average age at which recency reaches 0.
	RecencyHorizonDays = 30.0
)

// Levels returned by Score.Level.
const (
	LevelNotReady   = "not-ready"
	LevelDeveloping = "developing"
	LevelReady      = "ready"
)

// Config holds the topics a learner must cover.
type Config struct {
	RequiredTopics []string `mapstructure:"required_topics"`
}

// DefaultConfig returns the standard required topics.
func DefaultConfig() Config {
	return Config{RequiredTopics: []string{"algorithms", "data-structures", "system-design"}}
}

// Breakdown holds the four sub-scores, each in [0,100].
type Breakdown struct {
	Mastery     float64 `json:"mastery"`
	Consistency float64 `json:"consistency"`
	Coverage    float64 `json:"coverage"`
	Recency     float64 `json:"recency"`
}

// Score is a readiness estimate. It is computed on demand and never stored.
type Score struct {
	Overall   int       `json:"overall"`
	Breakdown Breakdown `json:"breakdown"`
}

// Level labels the overall score.
func (s Score) Level() string {
	switch {
	case s.Overall < 40:
		return LevelNotReady
	case s.Overall < 70:
		return LevelDeveloping
	default:
		return LevelReady
	}
}

// Inputs are the aggregates Estimate works from.
type Inputs struct {
	Correct   int
	Incorrect int
	Questions []srs.Question
}

// Estimate computes the readiness score. It performs no I/O.
func Estimate(in Inputs, cfg Config, now time.Time) Score {
	b := Breakdown{
		Mastery:     clamp(mastery(in)),
		Consistency: clamp(consistency(in.Correct, in.Incorrect)),
		Coverage:    clamp(coverage(in.Questions, cfg.RequiredTopics)),
		Recency:     clamp(recency(in.Questions, now)),
	}

	overall := MasteryWeight*b.Mastery +
		ConsistencyWeight*b.Consistency +
		CoverageWeight*b.Coverage +
		RecencyWeight*b.Recency

	return Score{
		Overall:   int(clamp(math.Round(overall))),
		Breakdown: b,
	}
}

func mastery(in Inputs) float64 {
	score := float64(srs.MasteryScore(in.Correct, in.Incorrect))
	if len(in.Questions) == 0 {
		return score
	}
	weak := lo.CountBy(in.Questions, func(q srs.Question) bool {
		return q.ReviewEase < WeakEase
	})
	return math.Max(0, score-float64(weak)/float64(len(in.Questions))*WeakPenalty)
}

func consistency(correct, incorrect int) float64 {
	total := correct + incorrect
	if total <= 0 {
		return 0
	}
	return 100 * float64(correct) / float64(total)
}

// coverage is the share of required topics that appear on at least one
// question.
func coverage(questions []srs.Question, required []string) float64 {
	required = lo.Uniq(required)
	if len(required) == 0 {
		return 0
	}
	covered := make(map[string]struct{})
	for _, q := range questions {
		for _, t := range q.Topics {
			covered[t] = struct{}{}
		}
	}
	hit := lo.CountBy(required, func(t string) bool {
		_, ok := covered[t]
		return ok
	})
	return 100 * float64(hit) / float64(len(required))
}

// recency falls linearly from 100 to 0 as the average days since each
// reviewed question's last review grows to RecencyHorizonDays.
func recency(questions []srs.Question, now time.Time) float64 {
	reviewed := lo.Filter(questions, func(q srs.Question, _ int) bool {
		return q.LastReviewed != nil
	})
	if len(reviewed) == 0 {
		return 0
	}
	var total float64
	for _, q := range reviewed {
		total += math.Max(0, now.Sub(*q.LastReviewed).Hours()/24)
	}
	avg := total / float64(len(reviewed))
	return 100 - math.Min(RecencyHorizonDays, avg)/RecencyHorizonDays*100
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
