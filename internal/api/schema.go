package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// courseContentSchema is the shape the viewer depends on. The backend
// is versioned independently of this client, so the payload is checked
// before hydration instead of failing deep inside the UI.
const courseContentSchema = `{
  "type": "object",
  "required": ["course_content"],
  "properties": {
    "is_paid": {"type": ["boolean", "null"]},
    "course_content": {
      "type": "object",
      "required": ["id", "name", "content"],
      "properties": {
        "id": {"type": "integer"},
        "name": {"type": "string"},
        "progress": {
          "type": "object",
          "properties": {
            "total_lessons": {"type": "integer", "minimum": 0},
            "completed_lessons": {"type": "integer", "minimum": 0},
            "progress_percentage": {"type": "number", "minimum": 0, "maximum": 100}
          }
        },
        "content": {
          "type": "object",
          "additionalProperties": {
            "type": "object",
            "required": ["id", "lessons"],
            "properties": {
              "id": {"type": "integer"},
              "title": {"type": "string"},
              "lessons": {
                "type": "array",
                "items": {
                  "type": "object",
                  "required": ["id", "title"],
                  "properties": {
                    "title": {"type": "string"},
                    "file_id": {"type": "string"},
                    "mime_type": {"type": "string"},
                    "is_completed": {"type": "boolean"},
                    "locked": {"type": "boolean"}
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateCourseContent checks the raw course_content reply against
// the schema. Returns *ErrInvalidPayload on mismatch.
func validateCourseContent(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidPayload{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(courseContentSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const schemaURL = "schema://course_content.json"
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	if compileErr != nil {
		return &ErrInvalidPayload{Err: compileErr}
	}

	if err := compiledSchema.Validate(parsed); err != nil {
		return &ErrInvalidPayload{Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}
