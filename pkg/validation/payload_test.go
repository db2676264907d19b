package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePayloadSchema(t *testing.T) {
	t.Parallel()

	schema := map[string]any{
		"type":     "object",
		"required": []any{"contact_id"},
		"properties": map[string]any{
			"contact_id": map[string]any{"type": "string"},
			"amount":     map[string]any{"type": "number"},
		},
	}

	err := ValidatePayloadSchema(map[string]any{"contact_id": "c-1", "amount": 10.5}, schema)
	assert.NoError(t, err)

	err = ValidatePayloadSchema(map[string]any{"amount": 10.5}, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contact_id")

	err = ValidatePayloadSchema(map[string]any{"contact_id": 42}, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payload schema violations")
}

func TestValidatePayloadSchema_NilSchemaAcceptsAnything(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePayloadSchema(map[string]any{"whatever": true}, nil))
}
