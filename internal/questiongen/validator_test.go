package questiongen

import (
	"reflect"
	"strings"
	"testing"
)

func TestStructuralValidator(t *testing.T) {
	valid := func() Question {
		return Question{
			Text:               "Explain TCP slow start.",
			IdealAnswerSummary: "Congestion window doubles per RTT until ssthresh, then grows linearly.",
			Topics:             []string{"networking"},
			Difficulty:         DifficultyMedium,
		}
	}

	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr string
	}{
		{"valid", func(q *Question) {}, ""},
		{"empty difficulty allowed", func(q *Question) { q.Difficulty = "" }, ""},
		{"blank text", func(q *Question) { q.Text = " \n" }, "question is empty"},
		{"long text", func(q *Question) { q.Text = strings.Repeat("a", MaxQuestionLen+1) }, "exceeds"},
		{"missing summary", func(q *Question) { q.IdealAnswerSummary = "" }, "ideal_answer_summary is empty"},
		{"blank summary", func(q *Question) { q.IdealAnswerSummary = " \t" }, "ideal_answer_summary is empty"},
		{"long summary", func(q *Question) { q.IdealAnswerSummary = strings.Repeat("a", MaxSummaryLen+1) }, "ideal_answer_summary"},
		{"too many topics", func(q *Question) { q.Topics = make([]string, MaxTopics+1) }, "topics"},
		{"blank topic", func(q *Question) { q.Topics = []string{"ok", " "} }, "topic is empty"},
		{"bad difficulty", func(q *Question) { q.Difficulty = "expert" }, "difficulty"},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid()
			tt.mutate(&q)
			err := v.Validate(&q, GenerateInput{})
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Message, tt.wantErr) {
				t.Errorf("message = %q, want it to contain %q", err.Message, tt.wantErr)
			}
			if err.Validator != "structural" {
				t.Errorf("validator = %q, want structural", err.Validator)
			}
		})
	}
}

func TestDuplicateValidator(t *testing.T) {
	v := &DuplicateValidator{}
	input := GenerateInput{ExistingQuestions: []string{"What is a  Mutex?"}}

	if v.Validate(&Question{Text: "what is a mutex?"}, input) == nil {
		t.Error("expected duplicate to be rejected")
	}
	if err := v.Validate(&Question{Text: "What is a semaphore?"}, input); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := v.Validate(&Question{Text: "What is a mutex?"}, GenerateInput{}); err != nil {
		t.Errorf("unexpected error with no existing questions: %v", err)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "duplicate", Message: "repeat"}
	if got, want := err.Error(), `validator "duplicate": repeat`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNormalizeTopics(t *testing.T) {
	got := NormalizeTopics([]string{" Go", "concurrency", "", "GO"})
	if want := []string{"go", "concurrency"}; !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTopics = %v, want %v", got, want)
	}
	if got := NormalizeTopics(nil); len(got) != 0 {
		t.Errorf("NormalizeTopics(nil) = %v, want empty", got)
	}
}
