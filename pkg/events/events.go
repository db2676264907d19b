// Package events defines event types for workflow and run lifecycle notifications.
package events

import (
	"time"
)

type EventType string

// Topic carries every workflow lifecycle event.
const Topic = "flowkit.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Workflow definition lifecycle.
	WorkflowActivatedEvent   EventType = "workflow.activated"
	WorkflowDeactivatedEvent EventType = "workflow.deactivated"

	// Run lifecycle.
	RunStartedEvent   EventType = "workflow.run.started"
	RunCompletedEvent EventType = "workflow.run.completed"
	RunFailedEvent    EventType = "workflow.run.failed"
	RunCancelledEvent EventType = "workflow.run.cancelled"
	RunPausedEvent    EventType = "workflow.run.paused"
	RunResumedEvent   EventType = "workflow.run.resumed"
)

type BaseEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	WorkflowID string    `json:"workflow_id"`
}

type WorkflowActivated struct {
	BaseEvent

	TriggerType string `json:"trigger_type"`
}

func (e WorkflowActivated) GetType() EventType {
	return WorkflowActivatedEvent
}

type WorkflowDeactivated struct {
	BaseEvent
}

func (e WorkflowDeactivated) GetType() EventType {
	return WorkflowDeactivatedEvent
}

type RunStarted struct {
	BaseEvent

	RunID       string         `json:"run_id"`
	TriggerType string         `json:"trigger_type"`
	TriggerData map[string]any `json:"trigger_data,omitempty"`
}

func (e RunStarted) GetType() EventType {
	return RunStartedEvent
}

type RunCompleted struct {
	BaseEvent

	RunID    string        `json:"run_id"`
	Duration time.Duration `json:"duration"`
}

func (e RunCompleted) GetType() EventType {
	return RunCompletedEvent
}

type RunFailed struct {
	BaseEvent

	RunID string `json:"run_id"`
	Error string `json:"error"`
}

func (e RunFailed) GetType() EventType {
	return RunFailedEvent
}

type RunCancelled struct {
	BaseEvent

	RunID string `json:"run_id"`
}

func (e RunCancelled) GetType() EventType {
	return RunCancelledEvent
}

type RunPaused struct {
	BaseEvent

	RunID string `json:"run_id"`

	// CurrentStep is the cursor position the run paused at.
	CurrentStep int `json:"current_step"`
}

func (e RunPaused) GetType() EventType {
	return RunPausedEvent
}

type RunResumed struct {
	BaseEvent

	RunID string `json:"run_id"`
}

func (e RunResumed) GetType() EventType {
	return RunResumedEvent
}
