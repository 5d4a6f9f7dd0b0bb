package questionbank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "prepiz://schema/question-document.json"

// documentSchema is the structural contract every question file must meet.
const documentSchema = `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "test_metadata": {
      "type": "object",
      "properties": {
        "test_id": {"type": "string"},
        "subject": {"type": "string"},
        "total_questions": {"type": "integer", "minimum": 0},
        "total_marks": {"type": "integer", "minimum": 0},
        "tags": {"type": "array", "items": {"type": "string"}}
      }
    },
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["q_id", "question_text", "options", "correct_answer"],
        "properties": {
          "q_id": {"type": "string"},
          "question_number": {"type": "integer"},
          "question_text": {"type": "string"},
          "options": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["option_id", "option_text"],
              "properties": {
                "option_id": {"type": "string"},
                "option_text": {"type": "string"}
              }
            }
          },
          "correct_answer": {"type": "string"},
          "marks": {"type": "integer", "minimum": 0}
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

// compileDocumentSchema compiles the document schema once per process.
func compileDocumentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(documentSchema), &doc); err != nil {
			schemaErr = fmt.Errorf("parse document schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add document schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(documentSchemaURL)
	})
	return compiledSchema, schemaErr
}

// validateRaw checks raw JSON against the document schema.
func validateRaw(raw []byte) error {
	sch, err := compileDocumentSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
