package llm

import (
	"reflect"
	"sort"
	"testing"

	"google.golang.org/genai"
)

func TestBuildGeminiSchema(t *testing.T) {
	schema := buildGeminiSchema(questionSchema().Definition)

	if schema.Type != genai.TypeObject {
		t.Errorf("root type = %v, want object", schema.Type)
	}
	if !reflect.DeepEqual(schema.Required, []string{"questions"}) {
		t.Errorf("root required = %v", schema.Required)
	}

	questions := schema.Properties["questions"]
	if questions == nil {
		t.Fatal("missing questions property")
	}
	if questions.Type != genai.TypeArray {
		t.Errorf("questions type = %v, want array", questions.Type)
	}
	if questions.MinItems == nil || *questions.MinItems != 1 {
		t.Errorf("questions minItems = %v, want 1", questions.MinItems)
	}

	item := questions.Items
	if item == nil {
		t.Fatal("missing questions items")
	}
	if item.Type != genai.TypeObject || len(item.Properties) != 4 {
		t.Fatalf("item = %v with %d properties, want object with 4", item.Type, len(item.Properties))
	}
	question := item.Properties["question"]
	if question.Type != genai.TypeString {
		t.Errorf("question type = %v, want string", question.Type)
	}
	if question.MinLength == nil || *question.MinLength != 1 {
		t.Errorf("question minLength = %v, want 1", question.MinLength)
	}
	if item.Properties["ideal_answer_summary"].MinLength != nil {
		t.Error("ideal_answer_summary should carry no minLength in this schema")
	}
	if topics := item.Properties["topics"]; topics.Type != genai.TypeArray || topics.Items.Type != genai.TypeString {
		t.Errorf("topics = %v of %v, want array of string", topics.Type, topics.Items.Type)
	}
	if got := item.Properties["difficulty"].Enum; !reflect.DeepEqual(got, []string{"easy", "medium", "hard"}) {
		t.Errorf("difficulty enum = %v", got)
	}
	required := append([]string(nil), item.Required...)
	sort.Strings(required)
	if !reflect.DeepEqual(required, []string{"question", "topics"}) {
		t.Errorf("item required = %v", item.Required)
	}
}

func TestIntBound(t *testing.T) {
	def := map[string]any{"minLength": 1, "maxItems": float64(5), "enum": "x"}

	if v := intBound(def, "minLength"); v == nil || *v != 1 {
		t.Errorf("int bound = %v, want 1", v)
	}
	if v := intBound(def, "maxItems"); v == nil || *v != 5 {
		t.Errorf("float bound = %v, want 5", v)
	}
	if v := intBound(def, "enum"); v != nil {
		t.Errorf("non-numeric keyword = %v, want nil", *v)
	}
	if v := intBound(def, "missing"); v != nil {
		t.Errorf("missing keyword = %v, want nil", *v)
	}
}
