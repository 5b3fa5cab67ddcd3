package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// buildResultsSchema returns the JSON-Schema for the exported results payload
// as a generic map. It is enforced when re-importing files for merging.
func buildResultsSchema() map[string]any {
	stringMap := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	}
	item := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"method":   map[string]any{"type": []any{"string", "null"}},
			"metrics":  stringMap,
			"snippets": stringMap,
			"message":  map[string]any{"type": "string"},
		},
		"required": []string{"method", "metrics", "snippets"},
	}
	return map[string]any{
		"type":  "array",
		"items": item,
	}
}

// ValidateResultsJSON validates data against the results payload schema.
func ValidateResultsJSON(data []byte) error {
	b, err := json.Marshal(buildResultsSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("results.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("results.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
