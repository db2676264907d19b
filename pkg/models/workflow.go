// Package models defines the core domain models for workflow automation.
package models

import "time"

// TriggerType identifies what kind of condition starts a workflow run.
type TriggerType string

const (
	TriggerTypeEvent    TriggerType = "event"    // Fired by a domain event (contact created, task updated, ...)
	TriggerTypeSchedule TriggerType = "schedule" // Fired on a daily/weekly/monthly/cron schedule
	TriggerTypeManual   TriggerType = "manual"   // Fired explicitly by a user
	TriggerTypeWebhook  TriggerType = "webhook"  // Fired by an inbound HTTP call
)

// TriggerTypes lists every supported trigger type.
func TriggerTypes() []TriggerType {
	return []TriggerType{TriggerTypeEvent, TriggerTypeSchedule, TriggerTypeManual, TriggerTypeWebhook}
}

// IsValidTriggerType reports whether t is one of the supported trigger types.
func IsValidTriggerType(t TriggerType) bool {
	switch t {
	case TriggerTypeEvent, TriggerTypeSchedule, TriggerTypeManual, TriggerTypeWebhook:
		return true
	default:
		return false
	}
}

// Workflow represents a named automation definition owned by one organization.
// Steps are an ordered sequence addressed by zero-based position; condition
// steps may carry an index jump into the same sequence.
type Workflow struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id" validate:"required"`
	Name           string          `json:"name"            validate:"required,min=1,max=200"`
	Description    string          `json:"description"     validate:"max=2000"`
	TriggerType    TriggerType     `json:"trigger_type"    validate:"required"`
	TriggerConfig  map[string]any  `json:"trigger_config"`
	IsActive       bool            `json:"is_active"`
	Steps          []*WorkflowStep `json:"steps"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty"`
}

// StepAt returns the step at the given zero-based position.
func (w *Workflow) StepAt(index int) (*WorkflowStep, bool) {
	if index < 0 || index >= len(w.Steps) {
		return nil, false
	}

	return w.Steps[index], true
}
