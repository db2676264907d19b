package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/flowkit/pkg/eventbus"
	"github.com/strideapp/flowkit/pkg/events"
	"github.com/strideapp/flowkit/pkg/models"
	"github.com/strideapp/flowkit/pkg/persistence"
)

// Run manages workflow run lifecycle: starting runs for active workflows and
// driving the status state machine. Status changes go through the model's
// transition methods so an invalid transition is rejected before anything is
// persisted.
type Run struct {
	persistence persistence.Persistence
	eventBus    eventbus.EventPublisher
}

// NewRun creates a new run service.
func NewRun(persistence persistence.Persistence, eventBus eventbus.EventPublisher) *Run {
	return &Run{
		persistence: persistence,
		eventBus:    eventBus,
	}
}

// Get returns a run by ID.
func (r *Run) Get(ctx context.Context, id string) (*models.WorkflowRun, error) {
	return r.persistence.RunRepository().GetByID(ctx, id)
}

// ListByWorkflow returns the run history for a workflow, newest first.
func (r *Run) ListByWorkflow(ctx context.Context, workflowID string) ([]*models.WorkflowRun, error) {
	return r.persistence.RunRepository().ListByWorkflow(ctx, workflowID)
}

// Start creates a run for an active workflow. Inactive and deleted workflows
// never execute.
func (r *Run) Start(ctx context.Context, workflowID string, triggerType models.TriggerType, triggerData map[string]any) (*models.WorkflowRun, error) {
	workflow, err := r.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	if !workflow.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrWorkflowInactive, workflowID)
	}

	run := models.NewWorkflowRun(workflow.ID, triggerType, triggerData)

	if err := r.persistence.RunRepository().Save(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	r.publish(ctx, run, events.RunStarted{
		BaseEvent:   r.baseEvent(events.RunStartedEvent, run.WorkflowID),
		RunID:       run.ID,
		TriggerType: string(run.TriggerType),
		TriggerData: run.TriggerData,
	})

	return run, nil
}

// Complete marks a run as successfully finished.
func (r *Run) Complete(ctx context.Context, id string) (*models.WorkflowRun, error) {
	return r.mutate(ctx, id, func(run *models.WorkflowRun) error {
		return run.Complete()
	}, func(run *models.WorkflowRun) eventbus.Event {
		return events.RunCompleted{
			BaseEvent: r.baseEvent(events.RunCompletedEvent, run.WorkflowID),
			RunID:     run.ID,
			Duration:  run.CompletedAt.Sub(run.StartedAt),
		}
	})
}

// Fail marks a run as failed with the given error message.
func (r *Run) Fail(ctx context.Context, id, message string) (*models.WorkflowRun, error) {
	return r.mutate(ctx, id, func(run *models.WorkflowRun) error {
		return run.Fail(message)
	}, func(run *models.WorkflowRun) eventbus.Event {
		return events.RunFailed{
			BaseEvent: r.baseEvent(events.RunFailedEvent, run.WorkflowID),
			RunID:     run.ID,
			Error:     run.ErrorMessage,
		}
	})
}

// Cancel cancels a running or paused run. Cancelling a terminal run returns
// ErrRunNotCancellable.
func (r *Run) Cancel(ctx context.Context, id string) (*models.WorkflowRun, error) {
	run, err := r.mutate(ctx, id, func(run *models.WorkflowRun) error {
		if err := run.Cancel(); err != nil {
			return fmt.Errorf("%w: %s", ErrRunNotCancellable, run.Status)
		}

		return nil
	}, func(run *models.WorkflowRun) eventbus.Event {
		return events.RunCancelled{
			BaseEvent: r.baseEvent(events.RunCancelledEvent, run.WorkflowID),
			RunID:     run.ID,
		}
	})
	if err != nil {
		return nil, err
	}

	return run, nil
}

// Pause suspends a running run.
func (r *Run) Pause(ctx context.Context, id string) (*models.WorkflowRun, error) {
	return r.mutate(ctx, id, func(run *models.WorkflowRun) error {
		return run.Pause()
	}, func(run *models.WorkflowRun) eventbus.Event {
		return events.RunPaused{
			BaseEvent:   r.baseEvent(events.RunPausedEvent, run.WorkflowID),
			RunID:       run.ID,
			CurrentStep: run.CurrentStep,
		}
	})
}

// Resume returns a paused run to running.
func (r *Run) Resume(ctx context.Context, id string) (*models.WorkflowRun, error) {
	return r.mutate(ctx, id, func(run *models.WorkflowRun) error {
		return run.Resume()
	}, func(run *models.WorkflowRun) eventbus.Event {
		return events.RunResumed{
			BaseEvent: r.baseEvent(events.RunResumedEvent, run.WorkflowID),
			RunID:     run.ID,
		}
	})
}

// mutate loads a run, applies a transition, and persists the result. The
// transition runs before Save so rejected moves leave the stored run
// untouched.
func (r *Run) mutate(ctx context.Context, id string, apply func(*models.WorkflowRun) error, event func(*models.WorkflowRun) eventbus.Event) (*models.WorkflowRun, error) {
	run, err := r.persistence.RunRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(run); err != nil {
		if errors.Is(err, models.ErrInvalidRunTransition) || errors.Is(err, ErrRunNotCancellable) {
			return nil, err
		}

		return nil, fmt.Errorf("run transition failed: %w", err)
	}

	if err := r.persistence.RunRepository().Save(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	r.publish(ctx, run, event(run))

	return run, nil
}

func (r *Run) baseEvent(eventType events.EventType, workflowID string) events.BaseEvent {
	return events.BaseEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Timestamp:  time.Now().UTC(),
		WorkflowID: workflowID,
	}
}

func (r *Run) publish(ctx context.Context, run *models.WorkflowRun, event eventbus.Event) {
	if r.eventBus == nil {
		return
	}

	_ = r.eventBus.Publish(ctx, run.WorkflowID, event)
}
