package models

import (
	"errors"
	"fmt"
	"time"
)

// RunStatus is the lifecycle state of a workflow run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
	RunStatusPaused    RunStatus = "paused"
)

var (
	// ErrInvalidRunTransition indicates a run status transition outside the
	// documented state machine.
	ErrInvalidRunTransition = errors.New("invalid run status transition")

	// ErrStepOutOfRange indicates a step cursor move outside the workflow's
	// step sequence.
	ErrStepOutOfRange = errors.New("step index out of range")
)

// runTransitions is the full state machine: a run is created running,
// reaches exactly one terminal state, and may round-trip through paused.
var runTransitions = map[RunStatus][]RunStatus{
	RunStatusRunning: {RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusPaused},
	RunStatusPaused:  {RunStatusRunning, RunStatusCancelled, RunStatusFailed},
}

// IsTerminal reports whether the status is a final state.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the state machine permits moving from s to next.
func (s RunStatus) CanTransitionTo(next RunStatus) bool {
	for _, allowed := range runTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// WorkflowRun is one execution instance of a workflow. It holds a weak
// reference to its workflow: deleting the workflow keeps run history intact.
// The execution worker owns a run's cursor; callers must serialize mutation
// of a given run (at most one advancing writer per run).
type WorkflowRun struct {
	ID           string         `json:"id"`
	WorkflowID   string         `json:"workflow_id"`
	Status       RunStatus      `json:"status"`
	TriggerType  TriggerType    `json:"trigger_type"`
	TriggerData  map[string]any `json:"trigger_data,omitempty"`
	CurrentStep  int            `json:"current_step"`
	StartedAt    time.Time      `json:"started_at"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// NewWorkflowRun creates a run in the running state with its cursor at step 0.
func NewWorkflowRun(workflowID string, triggerType TriggerType, triggerData map[string]any) *WorkflowRun {
	return &WorkflowRun{
		WorkflowID:  workflowID,
		Status:      RunStatusRunning,
		TriggerType: triggerType,
		TriggerData: triggerData,
		CurrentStep: 0,
		StartedAt:   time.Now().UTC(),
	}
}

func (r *WorkflowRun) transition(next RunStatus) error {
	if !r.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidRunTransition, r.Status, next)
	}

	r.Status = next

	if next.IsTerminal() {
		now := time.Now().UTC()
		r.CompletedAt = &now
	}

	return nil
}

// Complete marks the run as successfully finished.
func (r *WorkflowRun) Complete() error {
	return r.transition(RunStatusCompleted)
}

// Fail marks the run as failed with the given error message.
func (r *WorkflowRun) Fail(message string) error {
	if err := r.transition(RunStatusFailed); err != nil {
		return err
	}

	r.ErrorMessage = message

	return nil
}

// Cancel marks the run as cancelled. Allowed from running and paused.
func (r *WorkflowRun) Cancel() error {
	return r.transition(RunStatusCancelled)
}

// Pause suspends a running run, typically while a delay step waits.
func (r *WorkflowRun) Pause() error {
	return r.transition(RunStatusPaused)
}

// Resume returns a paused run to running.
func (r *WorkflowRun) Resume() error {
	return r.transition(RunStatusRunning)
}

// Advance moves the cursor to the next step. The cursor may land on
// stepCount, which means the run walked off the end of the sequence and
// should complete.
func (r *WorkflowRun) Advance(stepCount int) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot advance cursor in status %s", ErrInvalidRunTransition, r.Status)
	}

	if r.CurrentStep >= stepCount {
		return fmt.Errorf("%w: cursor already past step %d of %d", ErrStepOutOfRange, r.CurrentStep, stepCount)
	}

	r.CurrentStep++

	return nil
}

// JumpTo moves the cursor to an explicit branch target. Targets are raw
// indices into the step sequence and are bounds-checked here regardless of
// what the definition-time validator caught.
func (r *WorkflowRun) JumpTo(index, stepCount int) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot jump cursor in status %s", ErrInvalidRunTransition, r.Status)
	}

	if index < 0 || index >= stepCount {
		return fmt.Errorf("%w: jump target %d with %d steps", ErrStepOutOfRange, index, stepCount)
	}

	r.CurrentStep = index

	return nil
}

// Finished reports whether the cursor has walked past the last step.
func (r *WorkflowRun) Finished(stepCount int) bool {
	return r.CurrentStep >= stepCount
}
