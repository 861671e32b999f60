package ratelimit

import (
	"context"

	"github.com/abhisek/prepdeck/internal/questiongen"
)

// Generator limits calls to a questiongen.Generator per user.
type Generator struct {
	next    questiongen.Generator
	limiter *Limiter
}

// WrapGenerator returns next guarded by limiter. Calls are keyed by
// GenerateInput.UserID.
func WrapGenerator(next questiongen.Generator, limiter *Limiter) *Generator {
	return &Generator{next: next, limiter: limiter}
}

func (g *Generator) Generate(ctx context.Context, input questiongen.GenerateInput) ([]questiongen.Question, error) {
	if err := g.limiter.Allow(ctx, "generate:"+input.UserID); err != nil {
		return nil, err
	}
	return g.next.Generate(ctx, input)
}
