package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchema pairs a compiled schema with its definition decoded the
// way encoding/json decodes it, so numbers are float64.
type compiledSchema struct {
	schema *jsonschema.Schema
	def    any
}

// schemaCache holds compiled schemas by Schema.Name.
var schemaCache sync.Map // map[string]*compiledSchema

// validateResponse checks raw against schema and returns *ErrInvalidResponse
// on any mismatch. A nil schema accepts anything.
//
// Beyond JSON Schema, strings whose definition sets minLength must contain
// something other than whitespace.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return invalidResponse(raw, fmt.Errorf("invalid JSON: %w", err))
	}

	cs, err := compileSchema(schema)
	if err != nil {
		return invalidResponse(raw, fmt.Errorf("compile schema %q: %w", schema.Name, err))
	}
	if err := cs.schema.Validate(parsed); err != nil {
		return invalidResponse(raw, fmt.Errorf("schema validation failed: %w", err))
	}
	if path, ok := blankString(cs.def, parsed, ""); ok {
		return invalidResponse(raw, fmt.Errorf("schema validation failed: %s is blank", path))
	}
	return nil
}

func invalidResponse(raw json.RawMessage, err error) *ErrInvalidResponse {
	return &ErrInvalidResponse{Content: raw, Err: err}
}

func compileSchema(schema *Schema) (*compiledSchema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*compiledSchema), nil
	}

	// The compiler wants the decoded JSON form, not Go maps with int values.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	cs := &compiledSchema{schema: compiled, def: def}
	schemaCache.Store(schema.Name, cs)
	return cs, nil
}

// blankString walks v alongside its definition and returns the JSON pointer
// of the first whitespace-only string whose definition has minLength >= 1.
func blankString(def, v any, path string) (string, bool) {
	d, ok := def.(map[string]any)
	if !ok {
		return "", false
	}

	switch val := v.(type) {
	case string:
		if n, ok := d["minLength"].(float64); ok && n >= 1 && strings.TrimSpace(val) == "" {
			return path, true
		}
	case map[string]any:
		props, _ := d["properties"].(map[string]any)
		for k, child := range val {
			if p, ok := blankString(props[k], child, path+"/"+k); ok {
				return p, true
			}
		}
	case []any:
		for i, child := range val {
			if p, ok := blankString(d["items"], child, fmt.Sprintf("%s/%d", path, i)); ok {
				return p, true
			}
		}
	}
	return "", false
}
