package questiongen

import (
	"context"
	"testing"
)

func TestStaticGenerator_SkipsExisting(t *testing.T) {
	gen := NewStaticGenerator()
	first := defaultBank[0].Text

	qs, err := gen.Generate(context.Background(), GenerateInput{Role: "SWE", ExistingQuestions: []string{first}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if qs[0].Text != defaultBank[1].Text {
		t.Errorf("got %q, want the second bank question", qs[0].Text)
	}
}

func TestStaticGenerator_Count(t *testing.T) {
	qs, err := NewStaticGenerator().Generate(context.Background(), GenerateInput{Role: "SWE", Count: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 3 {
		t.Errorf("expected 3 questions, got %d", len(qs))
	}
}

func TestStaticGenerator_Exhausted(t *testing.T) {
	gen := NewStaticGenerator(Question{Text: "Only one"})

	_, err := gen.Generate(context.Background(), GenerateInput{Role: "SWE", ExistingQuestions: []string{"only one"}})
	if err == nil {
		t.Error("expected error once the bank is exhausted")
	}
}

func TestStaticGenerator_FillsDifficulty(t *testing.T) {
	qs, err := NewStaticGenerator(Question{Text: "Q"}).Generate(context.Background(), GenerateInput{Difficulty: "hard"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qs[0].Difficulty != "hard" {
		t.Errorf("Difficulty = %q, want hard", qs[0].Difficulty)
	}
}

func TestStaticGenerator_BankPassesStructuralValidation(t *testing.T) {
	v := &StructuralValidator{}
	for _, q := range defaultBank {
		q := q
		if err := v.Validate(&q, GenerateInput{}); err != nil {
			t.Errorf("bank question %q: %v", q.Text, err)
		}
	}
}
