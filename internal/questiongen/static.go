package questiongen

import (
	"context"
	"fmt"
)

// StaticGenerator returns questions from a fixed bank, skipping any that the
// learner already has. It needs no network access and is deterministic.
type StaticGenerator struct {
	Bank []Question
}

// NewStaticGenerator returns a StaticGenerator over bank, or over the
// built-in bank when bank is empty.
func NewStaticGenerator(bank ...Question) *StaticGenerator {
	if len(bank) == 0 {
		bank = defaultBank
	}
	return &StaticGenerator{Bank: bank}
}

func (g *StaticGenerator) Generate(_ context.Context, input GenerateInput) ([]Question, error) {
	input = normalizeInput(input)
	dup := &DuplicateValidator{}

	var out []Question
	for _, q := range g.Bank {
		q = normalizeQuestion(q, input)
		if dup.Validate(&q, input) != nil {
			continue
		}
		out = append(out, q)
		if len(out) == input.Count {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("static question bank exhausted for role %q", input.Role)
	}
	return out, nil
}

var defaultBank = []Question{
	{
		Text:               "What is a hash map and how does it resolve collisions? Why are lookups O(1) on average, and can you sketch how you would implement one with separate chaining?",
		IdealAnswerSummary: "Key to bucket via hash function; collisions via chaining or open addressing; average O(1) with good hash and load factor, resize when load factor exceeded; sketch array of linked lists with get/put.",
		Topics:             []string{"data-structures", "hashing"},
		Difficulty:         DifficultyEasy,
	},
	{
		Text:               "Explain binary search. Why does it need sorted input and what does it buy you over a linear scan? Walk me through finding the first index of a target in a sorted array with duplicates.",
		IdealAnswerSummary: "Halving search space on sorted data; O(log n) vs O(n); lower-bound variant keeps searching left after a match, careful with mid computation and loop invariants.",
		Topics:             []string{"algorithms", "searching"},
		Difficulty:         DifficultyEasy,
	},
	{
		Text:               "What is a rate limiter? Why would an API need one, and how would you design a distributed fixed-window or token-bucket limiter shared by several servers?",
		IdealAnswerSummary: "Caps requests per client per time window; protects capacity and fairness; shared counter in Redis with INCR and expiry or token bucket with atomic scripts; discuss window edges and clock skew.",
		Topics:             []string{"system-design", "rate-limiting"},
		Difficulty:         DifficultyMedium,
	},
	{
		Text:               "What does a database index do? What does it cost you on writes, and how would you pick indexes for a query that filters on user_id and sorts by created_at?",
		IdealAnswerSummary: "B-tree lookup structure speeding reads; extra write and storage cost; composite index (user_id, created_at) serves filter and order, column order matters.",
		Topics:             []string{"databases", "system-design"},
		Difficulty:         DifficultyMedium,
	},
	{
		Text:               "Explain the CAP theorem. Why can't a distributed store be consistent and available during a partition, and how would you position a shopping-cart service on that spectrum?",
		IdealAnswerSummary: "Consistency, availability, partition tolerance; under partition choose C or A; cart favours availability with merge on conflict, e.g. Dynamo-style.",
		Topics:             []string{"system-design", "distributed-systems"},
		Difficulty:         DifficultyHard,
	},
}
