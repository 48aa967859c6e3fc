package layout

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// storedWidgetsSchema guards the persisted widgets array before it is
// decoded. The type field is any non-empty string so orphaned entries
// referencing removed widget types survive a round trip.
const storedWidgetsSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "type", "title", "size", "order", "isVisible"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"type": {"type": "string", "minLength": 1},
			"title": {"type": "string"},
			"size": {"type": "string", "enum": ["small", "medium", "large", "full"]},
			"order": {"type": "integer"},
			"isVisible": {"type": "boolean"}
		}
	}
}`

var (
	widgetsSchemaOnce sync.Once
	widgetsSchema     *jsonschema.Schema
	widgetsSchemaErr  error
)

func compiledWidgetsSchema() (*jsonschema.Schema, error) {
	widgetsSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("stored_widgets.json", strings.NewReader(storedWidgetsSchema)); err != nil {
			widgetsSchemaErr = fmt.Errorf("layout: load stored widgets schema: %w", err)
			return
		}
		widgetsSchema, widgetsSchemaErr = compiler.Compile("stored_widgets.json")
		if widgetsSchemaErr != nil {
			widgetsSchemaErr = fmt.Errorf("layout: compile stored widgets schema: %w", widgetsSchemaErr)
		}
	})
	return widgetsSchema, widgetsSchemaErr
}

// DecodeStoredWidgets parses and validates a persisted widgets blob.
// Structurally invalid data returns an error; callers treat it exactly
// like an absent value.
func DecodeStoredWidgets(data []byte) ([]WidgetPlacement, error) {
	schema, err := compiledWidgetsSchema()
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("layout: parse stored widgets: %w", err)
	}
	if err := schema.Validate(payload); err != nil {
		return nil, fmt.Errorf("layout: stored widgets failed validation: %w", err)
	}
	var widgets []WidgetPlacement
	if err := json.Unmarshal(data, &widgets); err != nil {
		return nil, fmt.Errorf("layout: decode stored widgets: %w", err)
	}
	return widgets, nil
}

// EncodeWidgets serializes the widgets array for storage.
func EncodeWidgets(widgets []WidgetPlacement) ([]byte, error) {
	data, err := json.Marshal(widgets)
	if err != nil {
		return nil, fmt.Errorf("layout: encode widgets: %w", err)
	}
	return data, nil
}
