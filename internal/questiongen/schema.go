package questiongen

import "github.com/abhisek/prepdeck/internal/llm"

// QuestionSchema defines the JSON shape providers must return.
var QuestionSchema = &llm.Schema{
	Name:        "interview-questions",
	Description: "A batch of multi-part technical interview questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"minLength":   1,
							"description": "The full text of the interview question",
						},
						"ideal_answer_summary": map[string]any{
							"type":        "string",
							"minLength":   1,
							"description": "What a good answer covers: definition, rationale and application",
						},
						"topics": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Short lowercase topic tags",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{DifficultyEasy, DifficultyMedium, DifficultyHard},
						},
					},
					"required":             []any{"question", "ideal_answer_summary", "topics", "difficulty"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
