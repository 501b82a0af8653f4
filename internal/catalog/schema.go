package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const keywordListSchema = `{"type": ["array", "null"], "items": {"type": "string", "pattern": "\\S"}}`

// catalogSchema describes a catalog document. %s is replaced with extra
// properties allowed in pack files.
const catalogSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    %s
    "version": {"type": ["string", "number"]},
    "require_keywords": {"type": "boolean"},
    "keywords": ` + keywordListSchema + `,
    "penalty_keywords": ` + keywordListSchema + `,
    "linked_keywords": {
      "type": ["array", "null"],
      "items": {"type": "string", "pattern": "^[^:]*[^:\\s][^:]*:.*\\S"}
    },
    "location_weights": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["from", "to", "weight"],
        "properties": {
          "from": {"type": "string", "pattern": "\\S"},
          "to": {"type": "string", "pattern": "\\S"},
          "weight": {"type": "integer"}
        }
      }
    }
  }
}`

const packProperties = `
    "name": {"type": "string"},
    "description": {"type": "string"},
    "author": {"type": "string"},`

var (
	schemaOnce sync.Once
	fileSchema *jsonschema.Schema
	packSchema *jsonschema.Schema
	schemaErr  error
)

func compileSchemas() {
	fileSchema, schemaErr = compileSchema("catalog.json", fmt.Sprintf(catalogSchema, ""))
	if schemaErr != nil {
		return
	}
	packSchema, schemaErr = compileSchema("pack.json", fmt.Sprintf(catalogSchema, packProperties))
}

func compileSchema(name, raw string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(raw)); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

// Validate checks a catalog document strictly: unknown fields, blank
// keywords, linked keywords without a "primary:synonym" form and weights
// that are not whole numbers are all errors. Load itself is lenient and
// skips what it cannot use.
func Validate(data []byte) error {
	return validate(data, false)
}

// ValidatePack is Validate for pack files, which also carry name,
// description and author.
func ValidatePack(data []byte) error {
	return validate(data, true)
}

func validate(data []byte, pack bool) error {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return fmt.Errorf("catalog: compile schema: %w", schemaErr)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("catalog: parse: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	// Round-trip through JSON so numbers and maps have the shapes the
	// validator expects.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("catalog: document is not a mapping: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return err
	}

	sch := fileSchema
	if pack {
		sch = packSchema
	}
	if err := sch.Validate(normalized); err != nil {
		return fmt.Errorf("catalog: invalid: %w", err)
	}
	return nil
}
