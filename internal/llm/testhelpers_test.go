package llm

import (
	"io"

	"github.com/sirupsen/logrus"
)

// questionSchema mirrors the shape question generation asks providers for.
func questionSchema() *Schema {
	return &Schema{
		Name:        "test-interview-questions",
		Description: "Interview practice questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question":             map[string]any{"type": "string", "minLength": 1},
							"ideal_answer_summary": map[string]any{"type": "string"},
							"topics": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
							"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
						},
						"required": []any{"question", "topics"},
					},
				},
			},
			"required": []any{"questions"},
		},
	}
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
