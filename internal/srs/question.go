// Package srs implements the mastery model: per-question review state, bucket
// classification and the post-review ease/interval update. Everything here is
// pure; callers own persistence and supply the current time.
package srs

import "time"

// Ease bounds and defaults for the review model.
const (
	MinEase     = 1.3
	MaxEase     = 3.0
	DefaultEase = 2.5

	// PassingScore is the lowest score that counts as a successful recall.
	PassingScore = 60

	// EasyScore is the lowest score that grows the ease factor.
	EasyScore = 85

	// StrugglingEase and StrugglingCount flag questions for extra attention.
	StrugglingEase  = 2.0
	StrugglingCount = 3
)

// Question is the review state of one practice question for one learner.
type Question struct {
	ID         string
	UserID     string
	Content    string
	Answer     string
	Topics     []string
	Category   string
	Difficulty string

	ReviewCount     int
	ReviewInterval  int
	ReviewEase      float64
	StruggleCount   int
	LastReviewed    *time.Time
	LastStruggledAt *time.Time

	CreatedAt time.Time
}

// NewQuestion returns a never-reviewed question with default review state.
func NewQuestion(id, userID, content, answer string) Question {
	return Question{
		ID:         id,
		UserID:     userID,
		Content:    content,
		Answer:     answer,
		Topics:     []string{},
		Difficulty: "medium",
		ReviewEase: DefaultEase,
	}
}

// HasTopic reports whether the question is tagged with topic.
func (q *Question) HasTopic(topic string) bool {
	for _, t := range q.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// daysSince returns the fractional number of days between t and now.
func daysSince(t, now time.Time) float64 {
	return now.Sub(t).Hours() / 24.0
}
