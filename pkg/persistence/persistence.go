// Package persistence provides the data storage abstraction for workflows
// and workflow runs.
package persistence

import (
	"context"

	"github.com/strideapp/flowkit/pkg/models"
)

// WorkflowRepository stores workflow definitions. Deletes are soft: run
// history keeps referencing deleted workflows.
type WorkflowRepository interface {
	GetAll(ctx context.Context) ([]*models.Workflow, error)
	GetActive(ctx context.Context) ([]*models.Workflow, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	Save(ctx context.Context, workflow *models.Workflow) error
	Delete(ctx context.Context, id string) error
}

// RunRepository stores workflow run state. Runs are archival; they are never
// deleted alongside their workflow.
type RunRepository interface {
	GetByID(ctx context.Context, id string) (*models.WorkflowRun, error)
	ListByWorkflow(ctx context.Context, workflowID string) ([]*models.WorkflowRun, error)
	Save(ctx context.Context, run *models.WorkflowRun) error
}

type Persistence interface {
	WorkflowRepository() WorkflowRepository
	RunRepository() RunRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
