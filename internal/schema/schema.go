package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildResultJSONSchema returns the extraction-result contract as a JSON
// Schema (draft 2020-12 subset) in map form. The downstream form-prefill
// consumer validates against the same shape.
func BuildResultJSONSchema() map[string]any {
	itemProps := map[string]any{
		"name":        map[string]any{"type": "string", "minLength": 1},
		"quantity":    map[string]any{"type": "integer", "minimum": 1, "maximum": 1000},
		"unit_price":  map[string]any{"type": "number", "minimum": 0},
		"total_price": map[string]any{"type": "number", "minimum": 0},
		"code":        map[string]any{"type": "string"},
		"brand":       map[string]any{"type": "string"},
	}
	props := map[string]any{
		"vendor_name":    map[string]any{"type": "string"},
		"invoice_number": map[string]any{"type": "string"},
		"invoice_date":   isoDateProp(),
		"due_date":       isoDateProp(),
		"total_amount":   map[string]any{"type": "number", "minimum": 0},
		"items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           itemProps,
				"required":             []string{"name", "quantity", "unit_price", "total_price"},
			},
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		// Zero/empty defaults stand in for "not found", so only the two
		// always-present fields are required.
		"required": []string{"total_amount", "items"},
	}
}

func isoDateProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^\d{4}-\d{2}-\d{2}$`,
	}
}

// ValidateResult validates serialized result JSON against the contract.
func ValidateResult(data []byte) error {
	b, err := json.Marshal(BuildResultJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
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
