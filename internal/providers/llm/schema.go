package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema that model output must satisfy.
type Schema struct {
	Name       string
	Definition map[string]any
}

var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateResponse reports KindMalformed for unparsable JSON and
// KindInvalid for JSON that breaks the schema.
func validateResponse(schema *Schema, raw json.RawMessage) *GenerationError {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return genErr(KindMalformed, fmt.Errorf("invalid JSON: %w", err))
	}
	if schema == nil {
		return nil
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return genErr(KindInvalid, fmt.Errorf("compile schema %q: %w", schema.Name, err))
	}
	if err := compiled.Validate(parsed); err != nil {
		return genErr(KindInvalid, fmt.Errorf("schema validation failed: %w", err))
	}
	return nil
}

func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// the compiler wants a decoded JSON value, not Go maps with typed slices
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
