package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidatePayloadSchema checks an inbound webhook payload against the JSON
// schema a workflow's webhook trigger optionally carries in its
// payload_schema field. A nil schema accepts anything.
func ValidatePayloadSchema(payload, schema map[string]any) error {
	if schema == nil {
		return nil
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	payloadLoader := gojsonschema.NewGoLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, payloadLoader)
	if err != nil {
		return fmt.Errorf("failed to evaluate payload schema: %w", err)
	}

	if !result.Valid() {
		descriptions := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			descriptions = append(descriptions, desc.String())
		}

		return fmt.Errorf("payload schema violations: %s", strings.Join(descriptions, "; "))
	}

	return nil
}
