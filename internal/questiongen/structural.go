package questiongen

import (
	"fmt"
	"strings"
)

// Limits enforced by StructuralValidator.
const (
	MaxQuestionLen = 2000
	MaxSummaryLen  = 4000
	MaxTopics      = 10
)

// StructuralValidator checks required fields, length limits and enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	switch {
	case strings.TrimSpace(q.Text) == "":
		return fail("question is empty")
	case len(q.Text) > MaxQuestionLen:
		return fail(fmt.Sprintf("question exceeds %d characters", MaxQuestionLen))
	case strings.TrimSpace(q.IdealAnswerSummary) == "":
		return fail("ideal_answer_summary is empty")
	case len(q.IdealAnswerSummary) > MaxSummaryLen:
		return fail(fmt.Sprintf("ideal_answer_summary exceeds %d characters", MaxSummaryLen))
	case len(q.Topics) > MaxTopics:
		return fail(fmt.Sprintf("more than %d topics", MaxTopics))
	}

	for _, t := range q.Topics {
		if strings.TrimSpace(t) == "" {
			return fail("topic is empty")
		}
	}

	switch q.Difficulty {
	case "", DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fail(fmt.Sprintf("difficulty %q is not easy, medium or hard", q.Difficulty))
	}
	return nil
}
