package lesson

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// lessonSchemaJSON checks the required top-level structure of the model's
// reply. Cardinality rules (slide counts, option counts) are prompted for but
// not enforced here; a reply missing whole sections is what triggers fallback.
const lessonSchemaJSON = `{
  "type": "object",
  "required": ["skill_name", "short_description", "learning_outcomes", "summary", "visual", "quiz"],
  "properties": {
    "skill_name": {"type": "string", "minLength": 1},
    "short_description": {"type": "string", "minLength": 1},
    "learning_outcomes": {"type": "array", "items": {"type": "string"}},
    "summary": {
      "type": "object",
      "required": ["main_points"],
      "properties": {"main_points": {"type": "array", "items": {"type": "string"}}}
    },
    "visual": {
      "type": "object",
      "required": ["slides"],
      "properties": {
        "slides": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["title", "body"],
            "properties": {
              "title": {"type": "string"},
              "body": {"type": "string"},
              "bullets": {"type": "array", "items": {"type": "string"}}
            }
          }
        }
      }
    },
    "quiz": {
      "type": "object",
      "required": ["questions"],
      "properties": {
        "questions": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["question", "options", "correct_index"],
            "properties": {
              "question": {"type": "string"},
              "options": {"type": "array", "items": {"type": "string"}},
              "correct_index": {"type": "integer", "minimum": 0, "maximum": 3},
              "explanation": {"type": "string"}
            }
          }
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func lessonSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(lessonSchemaJSON), &doc); err != nil {
			schemaErr = fmt.Errorf("parse lesson schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://lesson.json", doc); err != nil {
			schemaErr = fmt.Errorf("add lesson schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://lesson.json")
	})
	return compiledSchema, schemaErr
}

// validateRaw parses raw model output and checks it against the lesson schema.
func validateRaw(raw string) (any, error) {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := lessonSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("lesson schema validation failed: %w", err)
	}
	return parsed, nil
}
