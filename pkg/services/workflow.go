package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/strideapp/flowkit/pkg/eventbus"
	"github.com/strideapp/flowkit/pkg/events"
	"github.com/strideapp/flowkit/pkg/models"
	"github.com/strideapp/flowkit/pkg/persistence"
	"github.com/strideapp/flowkit/pkg/validation"
)

// Workflow implements workflow definition management. Every write path runs
// the full document validator first: a persisted workflow is always
// structurally valid for its trigger type and step configs.
type Workflow struct {
	persistence persistence.Persistence
	eventBus    eventbus.EventPublisher
}

// NewWorkflow creates a new workflow service.
func NewWorkflow(persistence persistence.Persistence, eventBus eventbus.EventPublisher) *Workflow {
	return &Workflow{
		persistence: persistence,
		eventBus:    eventBus,
	}
}

// HealthCheck checks the health of the persistence layer.
func (w *Workflow) HealthCheck(ctx context.Context) (string, bool) {
	if w.persistence == nil {
		return "Persistence layer not initialized", false
	}

	if err := w.persistence.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List returns all workflows.
func (w *Workflow) List(ctx context.Context) ([]*models.Workflow, error) {
	return w.persistence.WorkflowRepository().GetAll(ctx)
}

// ListActive returns the active workflows, the candidate set for trigger
// matching.
func (w *Workflow) ListActive(ctx context.Context) ([]*models.Workflow, error) {
	return w.persistence.WorkflowRepository().GetActive(ctx)
}

// FetchByID returns a workflow by ID.
func (w *Workflow) FetchByID(ctx context.Context, id string) (*models.Workflow, error) {
	return w.persistence.WorkflowRepository().GetByID(ctx, id)
}

// Validate runs the document validator without persisting anything, for
// dry-run feedback while a user edits.
func (w *Workflow) Validate(workflow *models.Workflow) validation.Result {
	return validation.ValidateWorkflow(workflow)
}

// Create validates and persists a new workflow. New workflows start
// inactive; activation is a separate, re-validated step.
func (w *Workflow) Create(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow == nil {
		return nil, ErrWorkflowNil
	}

	if result := validation.ValidateWorkflow(workflow); !result.Valid {
		return nil, NewValidationError(result.Errors)
	}

	workflow.ID = ""
	workflow.IsActive = false

	if err := w.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return workflow, nil
}

// Update validates and persists changes to an existing workflow.
func (w *Workflow) Update(ctx context.Context, id string, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow == nil {
		return nil, ErrWorkflowNil
	}

	existing, err := w.persistence.WorkflowRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if result := validation.ValidateWorkflow(workflow); !result.Valid {
		return nil, NewValidationError(result.Errors)
	}

	workflow.ID = id
	workflow.CreatedAt = existing.CreatedAt

	if err := w.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return workflow, nil
}

// Delete soft deletes a workflow. Run history is archival and survives.
func (w *Workflow) Delete(ctx context.Context, id string) error {
	return w.persistence.WorkflowRepository().Delete(ctx, id)
}

// Activate re-validates and marks a workflow active. Re-validation keeps
// the invariant intact even if validation rules tightened since the
// workflow was saved.
func (w *Workflow) Activate(ctx context.Context, id string) (*models.Workflow, error) {
	workflow, err := w.persistence.WorkflowRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if result := validation.ValidateWorkflow(workflow); !result.Valid {
		return nil, NewValidationError(result.Errors)
	}

	workflow.IsActive = true

	if err := w.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	w.publish(ctx, workflow.ID, events.WorkflowActivated{
		BaseEvent: events.BaseEvent{
			ID:         uuid.New().String(),
			Type:       events.WorkflowActivatedEvent,
			Timestamp:  time.Now().UTC(),
			WorkflowID: workflow.ID,
		},
		TriggerType: string(workflow.TriggerType),
	})

	return workflow, nil
}

// Deactivate marks a workflow inactive. Inactive workflows are never executed.
func (w *Workflow) Deactivate(ctx context.Context, id string) (*models.Workflow, error) {
	workflow, err := w.persistence.WorkflowRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	workflow.IsActive = false

	if err := w.persistence.WorkflowRepository().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	w.publish(ctx, workflow.ID, events.WorkflowDeactivated{
		BaseEvent: events.BaseEvent{
			ID:         uuid.New().String(),
			Type:       events.WorkflowDeactivatedEvent,
			Timestamp:  time.Now().UTC(),
			WorkflowID: workflow.ID,
		},
	})

	return workflow, nil
}

// publish sends a lifecycle event. Event delivery is best effort; a bus
// failure never fails the write that triggered it.
func (w *Workflow) publish(ctx context.Context, key string, event eventbus.Event) {
	if w.eventBus == nil {
		return
	}

	_ = w.eventBus.Publish(ctx, key, event)
}
