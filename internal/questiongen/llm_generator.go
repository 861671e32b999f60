package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/abhisek/prepdeck/internal/llm"
)

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// batchOutput is the raw LLM response before validation.
type batchOutput struct {
	Questions []Question `json:"questions"`
}

// Generate asks the provider for questions and returns the ones that pass
// every validator, at most input.Count of them.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]Question, error) {
	input = normalizeInput(input)
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	var (
		out      []Question
		firstErr *ValidationError
	)
	for _, q := range raw.Questions {
		q = normalizeQuestion(q, input)
		if verr := g.validate(&q, input); verr != nil {
			if firstErr == nil {
				firstErr = verr
			}
			continue
		}
		out = append(out, q)
		// Later questions in the batch must not repeat earlier ones either.
		input.ExistingQuestions = append(input.ExistingQuestions, q.Text)
		if len(out) == input.Count {
			break
		}
	}

	if len(out) == 0 {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, &ValidationError{Validator: "structural", Message: "no questions returned", Retryable: true}
	}
	return out, nil
}

func (g *LLMGenerator) validate(q *Question, input GenerateInput) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	return nil
}

func normalizeInput(input GenerateInput) GenerateInput {
	if input.Count < 1 {
		input.Count = 1
	}
	if input.Difficulty == "" {
		input.Difficulty = DifficultyMedium
	}
	input.ExistingQuestions = append([]string(nil), input.ExistingQuestions...)
	return input
}

// normalizeQuestion trims fields, folds topics to unique lowercase tags and
// fills in a missing difficulty.
func normalizeQuestion(q Question, input GenerateInput) Question {
	q.Text = strings.TrimSpace(q.Text)
	q.IdealAnswerSummary = strings.TrimSpace(q.IdealAnswerSummary)
	q.Topics = NormalizeTopics(q.Topics)
	q.Difficulty = strings.ToLower(strings.TrimSpace(q.Difficulty))
	if q.Difficulty == "" {
		q.Difficulty = input.Difficulty
	}
	return q
}

// NormalizeTopics lowercases and trims topics, dropping blanks and
// duplicates while keeping first-seen order.
func NormalizeTopics(topics []string) []string {
	out := lo.Map(topics, func(t string, _ int) string {
		return strings.ToLower(strings.TrimSpace(t))
	})
	return lo.Uniq(lo.Compact(out))
}
