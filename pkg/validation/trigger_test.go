package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strideapp/flowkit/pkg/models"
)

func TestValidateTriggerConfig_Event(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		config    map[string]any
		wantValid bool
		wantError string
	}{
		{
			name:      "valid with event types",
			config:    map[string]any{"event_types": []any{"contact_created"}},
			wantValid: true,
		},
		{
			name: "valid with entity type and filters",
			config: map[string]any{
				"event_types": []any{"task_updated", "task_created"},
				"entity_type": "task",
				"filters":     map[string]any{"status": "done"},
			},
			wantValid: true,
		},
		{
			name:      "missing event types",
			config:    map[string]any{},
			wantValid: false,
			wantError: "event_types: Required",
		},
		{
			name:      "empty event types",
			config:    map[string]any{"event_types": []any{}},
			wantValid: false,
			wantError: "event_types: At least one event type is required",
		},
		{
			name:      "event types with non-string entry",
			config:    map[string]any{"event_types": []any{"contact_created", 42}},
			wantValid: false,
			wantError: "event_types: Must be a list of strings",
		},
		{
			name:      "event types wrong type",
			config:    map[string]any{"event_types": "contact_created"},
			wantValid: false,
			wantError: "event_types: Must be a list of strings",
		},
		{
			name:      "entity type wrong type",
			config:    map[string]any{"event_types": []any{"x"}, "entity_type": 1},
			wantValid: false,
			wantError: "entity_type: Must be a string",
		},
		{
			name:      "filters wrong type",
			config:    map[string]any{"event_types": []any{"x"}, "filters": "status=done"},
			wantValid: false,
			wantError: "filters: Must be an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := ValidateTriggerConfig(models.TriggerTypeEvent, tt.config)

			assert.Equal(t, tt.wantValid, result.Valid)
			if tt.wantError != "" {
				assert.Contains(t, result.Errors, tt.wantError)
			}
		})
	}
}

func TestValidateTriggerConfig_Schedule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		config    map[string]any
		wantValid bool
		wantError string
	}{
		{
			name:      "daily is valid",
			config:    map[string]any{"schedule_type": "daily"},
			wantValid: true,
		},
		{
			name: "weekly with day and time",
			config: map[string]any{
				"schedule_type": "weekly",
				"day_of_week":   1,
				"time":          "09:30",
				"timezone":      "Europe/Berlin",
			},
			wantValid: true,
		},
		{
			name:      "hourly is not in the enum",
			config:    map[string]any{"schedule_type": "hourly"},
			wantValid: false,
			wantError: "schedule_type: Invalid enum value",
		},
		{
			name:      "missing schedule type",
			config:    map[string]any{},
			wantValid: false,
			wantError: "schedule_type: Required",
		},
		{
			name:      "day_of_week out of range",
			config:    map[string]any{"schedule_type": "weekly", "day_of_week": 7},
			wantValid: false,
			wantError: "day_of_week: Must be an integer between 0 and 6",
		},
		{
			name:      "day_of_month out of range",
			config:    map[string]any{"schedule_type": "monthly", "day_of_month": 0},
			wantValid: false,
			wantError: "day_of_month: Must be an integer between 1 and 31",
		},
		{
			name:      "day_of_month as JSON float",
			config:    map[string]any{"schedule_type": "monthly", "day_of_month": float64(15)},
			wantValid: true,
		},
		{
			name:      "valid cron expression",
			config:    map[string]any{"schedule_type": "cron", "cron": "0 9 * * 1-5"},
			wantValid: true,
		},
		{
			name:      "invalid cron expression",
			config:    map[string]any{"schedule_type": "cron", "cron": "not a cron"},
			wantValid: false,
			wantError: "cron: Invalid cron expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := ValidateTriggerConfig(models.TriggerTypeSchedule, tt.config)

			assert.Equal(t, tt.wantValid, result.Valid)
			if tt.wantError != "" {
				assert.Contains(t, result.Errors, tt.wantError)
			}
		})
	}
}

func TestValidateTriggerConfig_TimeFormatBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		time      string
		wantValid bool
	}{
		{"00:00", true},
		{"23:59", true},
		{"09:05", true},
		{"24:00", false},
		{"23:60", false},
		{"9:5", false},
		{"9:30", false},
		{"12:3", false},
		{"noon", false},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			t.Parallel()

			result := ValidateTriggerConfig(models.TriggerTypeSchedule, map[string]any{
				"schedule_type": "daily",
				"time":          tt.time,
			})

			assert.Equal(t, tt.wantValid, result.Valid)
			if !tt.wantValid {
				assert.Contains(t, result.Errors, "time: Must match HH:MM format")
			}
		})
	}
}

func TestValidateTriggerConfig_Webhook(t *testing.T) {
	t.Parallel()

	result := ValidateTriggerConfig(models.TriggerTypeWebhook, map[string]any{})
	assert.True(t, result.Valid, "webhook trigger requires no fields")

	result = ValidateTriggerConfig(models.TriggerTypeWebhook, map[string]any{
		"secret":      "shh",
		"allowed_ips": []any{"10.0.0.1", "10.0.0.2"},
	})
	assert.True(t, result.Valid)

	result = ValidateTriggerConfig(models.TriggerTypeWebhook, map[string]any{
		"allowed_ips": []any{"10.0.0.1", 8080},
	})
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "allowed_ips: Must be a list of strings")

	result = ValidateTriggerConfig(models.TriggerTypeWebhook, map[string]any{
		"payload_schema": "not an object",
	})
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "payload_schema: Must be an object")
}

func TestValidateTriggerConfig_Manual(t *testing.T) {
	t.Parallel()

	result := ValidateTriggerConfig(models.TriggerTypeManual, map[string]any{})
	assert.True(t, result.Valid)

	result = ValidateTriggerConfig(models.TriggerTypeManual, map[string]any{"description": "run me"})
	assert.True(t, result.Valid)

	result = ValidateTriggerConfig(models.TriggerTypeManual, map[string]any{"description": 42})
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "description: Must be a string")
}

func TestValidateTriggerConfig_UnknownType(t *testing.T) {
	t.Parallel()

	result := ValidateTriggerConfig("poll", map[string]any{})

	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "trigger_type: Unknown trigger type 'poll'")
}
