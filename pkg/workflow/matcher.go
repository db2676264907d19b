// Package workflow matches incoming trigger events against active workflow
// definitions to decide which runs to start.
package workflow

import (
	"log/slog"
	"reflect"

	"github.com/strideapp/flowkit/pkg/models"
	"github.com/strideapp/flowkit/pkg/validation"
)

// TriggerEvent is an inbound occurrence that may start workflow runs: a
// domain event, a schedule tick, a manual request, or a webhook delivery.
type TriggerEvent struct {
	// Type is the trigger channel the event arrived on.
	Type models.TriggerType

	// EventType is the domain event name, e.g. "contact.created". Only set
	// for event triggers.
	EventType string

	// EntityType is the entity the event concerns, e.g. "contact".
	EntityType string

	// WorkflowID targets a single workflow. Set for manual and webhook
	// triggers, which address one workflow directly.
	WorkflowID string

	// Payload is the event body, matched against trigger filters and
	// webhook payload schemas.
	Payload map[string]any
}

// TriggerMatcher decides which workflows a trigger event should start.
type TriggerMatcher struct {
	logger *slog.Logger
}

// NewTriggerMatcher creates a new trigger matcher.
func NewTriggerMatcher(logger *slog.Logger) *TriggerMatcher {
	return &TriggerMatcher{
		logger: logger.With("module", "trigger_matcher"),
	}
}

// Match returns the workflows from the given set that the event should
// start. Inactive workflows are expected to be filtered out by the caller's
// query; they are skipped here as well.
func (m *TriggerMatcher) Match(event TriggerEvent, workflows []*models.Workflow) []*models.Workflow {
	matched := make([]*models.Workflow, 0)

	for _, workflow := range workflows {
		if !workflow.IsActive {
			continue
		}

		if workflow.TriggerType != event.Type {
			continue
		}

		if m.matches(event, workflow) {
			matched = append(matched, workflow)
		}
	}

	m.logger.Debug("matched trigger event",
		"trigger_type", event.Type,
		"event_type", event.EventType,
		"candidates", len(workflows),
		"matches", len(matched))

	return matched
}

func (m *TriggerMatcher) matches(event TriggerEvent, workflow *models.Workflow) bool {
	switch workflow.TriggerType {
	case models.TriggerTypeEvent:
		return m.matchEvent(event, workflow.TriggerConfig)
	case models.TriggerTypeManual:
		return event.WorkflowID == workflow.ID
	case models.TriggerTypeWebhook:
		return m.matchWebhook(event, workflow)
	case models.TriggerTypeSchedule:
		// Schedule firing is decided by the scheduler, which addresses the
		// workflow directly.
		return event.WorkflowID == workflow.ID
	default:
		return false
	}
}

// matchEvent checks event_types membership, then the optional entity_type
// and filters constraints.
func (m *TriggerMatcher) matchEvent(event TriggerEvent, config map[string]any) bool {
	eventTypes, ok := config["event_types"].([]any)
	if !ok {
		if typed, typedOK := config["event_types"].([]string); typedOK {
			eventTypes = make([]any, len(typed))
			for i, v := range typed {
				eventTypes[i] = v
			}
		} else {
			return false
		}
	}

	if !containsString(eventTypes, event.EventType) {
		return false
	}

	if entityType, present := config["entity_type"].(string); present && entityType != "" {
		if entityType != event.EntityType {
			return false
		}
	}

	if filters, present := config["filters"].(map[string]any); present {
		for key, expected := range filters {
			// Filter values are free-form JSON and may be nested objects or
			// arrays, which are not comparable with ==.
			if !reflect.DeepEqual(event.Payload[key], expected) {
				return false
			}
		}
	}

	return true
}

// matchWebhook requires a direct workflow address and, when the trigger
// declares a payload_schema, a conforming payload.
func (m *TriggerMatcher) matchWebhook(event TriggerEvent, workflow *models.Workflow) bool {
	if event.WorkflowID != workflow.ID {
		return false
	}

	schema, present := workflow.TriggerConfig["payload_schema"].(map[string]any)
	if !present {
		return true
	}

	if err := validation.ValidatePayloadSchema(event.Payload, schema); err != nil {
		m.logger.Warn("webhook payload rejected by schema",
			"workflow_id", workflow.ID,
			"error", err)

		return false
	}

	return true
}

func containsString(values []any, target string) bool {
	for _, value := range values {
		if s, ok := value.(string); ok && s == target {
			return true
		}
	}

	return false
}
