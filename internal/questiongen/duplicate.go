package questiongen

import "strings"

// DuplicateValidator rejects questions whose text matches an existing
// question after case and whitespace folding.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q *Question, input GenerateInput) *ValidationError {
	text := normalizeText(q.Text)
	for _, existing := range input.ExistingQuestions {
		if normalizeText(existing) == text {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "question repeats an existing question",
				Retryable: true,
			}
		}
	}
	return nil
}

func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
