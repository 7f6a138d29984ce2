// Package questionset parses raw model output into validated questions.
//
// The parse is deliberately lenient: optional fields are defaulted and only
// a missing required field (prompt, type, difficulty, answer) or unparseable
// JSON is rejected. No deeper semantic validation is performed here.
package questionset

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"quizforge/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// lenientSchema enforces only the required fields of each question. Unlike
// the schema constraint sent to the provider, questions and options are
// optional here: a model that returns zero questions is a valid outcome.
var lenientSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"questions": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"prompt":     map[string]interface{}{"type": "string"},
					"type":       map[string]interface{}{"type": "string"},
					"difficulty": map[string]interface{}{"type": "string"},
					"answer":     map[string]interface{}{"type": "string"},
					"options": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
				},
				"required": []interface{}{"prompt", "type", "difficulty", "answer"},
			},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not raw bytes.
		defBytes, err := json.Marshal(lenientSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed interface{}
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://question-set.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

type envelope struct {
	Questions []domain.Question `json:"questions"`
}

// Parse parses the gateway's raw text as the expected question schema. On
// failure it returns a malformed-output error carrying the raw text
// unmodified so the caller can surface it for diagnostics. A parse that
// yields no questions field returns an empty slice, not an error.
func Parse(raw string) ([]domain.Question, error) {
	cleaned := stripCodeFences(raw)

	var parsed interface{}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, domain.NewMalformedModelOutputError(raw, err)
	}

	schema, err := getCompiledSchema()
	if err != nil {
		return nil, domain.NewInternalError("failed to compile question schema", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, domain.NewMalformedModelOutputError(raw, err)
	}

	var env envelope
	if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
		return nil, domain.NewMalformedModelOutputError(raw, err)
	}

	if env.Questions == nil {
		env.Questions = []domain.Question{}
	}
	for i := range env.Questions {
		if env.Questions[i].Options == nil {
			env.Questions[i].Options = []string{}
		}
	}
	return env.Questions, nil
}

// stripCodeFences removes a surrounding markdown fence the model may emit
// despite the schema constraint.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
