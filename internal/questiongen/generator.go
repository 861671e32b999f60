// Package questiongen produces new interview questions for a role. The
// scheduler calls it when an objective's practice queue runs dry.
package questiongen

import "context"

// Generator produces interview questions.
type Generator interface {
	// Generate returns up to input.Count validated questions. It returns an
	// error when no question survives validation.
	Generate(ctx context.Context, input GenerateInput) ([]Question, error)
}

// Difficulty labels accepted for generated questions.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is one generated interview question.
type Question struct {
	// Text is the full question shown to the learner.
	Text string `json:"question"`

	// IdealAnswerSummary is what a strong answer covers. Stored as the
	// question's answer and used when grading.
	IdealAnswerSummary string `json:"ideal_answer_summary"`

	// Topics tags the question, e.g. "system-design".
	Topics []string `json:"topics"`

	// Difficulty is one of easy, medium or hard.
	Difficulty string `json:"difficulty"`
}

// GenerateInput holds the context needed to generate questions.
type GenerateInput struct {
	// UserID is used for rate limiting and logging only.
	UserID string

	// Role is the job role questions target, e.g. "Backend Engineer".
	Role string

	// Difficulty is the requested difficulty label.
	Difficulty string

	// Count is how many questions to ask for. Values below 1 mean 1.
	Count int

	// ExistingQuestions holds the text of questions the learner already has
	// for this role. New questions must not repeat them.
	ExistingQuestions []string
}
