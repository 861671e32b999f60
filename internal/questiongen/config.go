package questiongen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question. A question
	// that fails any validator is discarded.
	Validators []Validator `mapstructure:"-"`

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int `mapstructure:"max_tokens"`

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64 `mapstructure:"temperature"`

	// MaxExistingQuestions caps how many existing questions are listed in
	// the prompt as exclusions. The most recent ones are kept.
	MaxExistingQuestions int `mapstructure:"max_existing_questions"`
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:            2048,
		Temperature:          0.8,
		MaxExistingQuestions: 25,
	}
}
