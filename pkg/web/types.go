// Package web provides HTTP request and response types for the workflow API.
package web

import "github.com/strideapp/flowkit/pkg/models"

// StepRequest is one step in a workflow create or update body.
type StepRequest struct {
	StepType     string         `json:"step_type"                validate:"required"`
	ActionType   string         `json:"action_type,omitempty"`
	Config       map[string]any `json:"config"`
	ElseGotoStep *int           `json:"else_goto_step,omitempty"`
}

// CreateWorkflowRequest represents the request body for creating a new workflow.
type CreateWorkflowRequest struct {
	OrganizationID string         `json:"organization_id" validate:"required"`
	Name           string         `json:"name"            validate:"required"`
	Description    string         `json:"description"`
	TriggerType    string         `json:"trigger_type"    validate:"required"`
	TriggerConfig  map[string]any `json:"trigger_config"`
	Steps          []StepRequest  `json:"steps"`
}

// UpdateWorkflowRequest represents the request body for updating an existing
// workflow. All fields are optional to support partial updates; steps are
// replaced wholesale when present.
type UpdateWorkflowRequest struct {
	Name          *string        `json:"name,omitempty"`
	Description   *string        `json:"description,omitempty"`
	TriggerType   *string        `json:"trigger_type,omitempty"`
	TriggerConfig map[string]any `json:"trigger_config,omitempty"`
	Steps         []StepRequest  `json:"steps,omitempty"`
}

// StartRunRequest represents the request body for manually starting a run.
type StartRunRequest struct {
	TriggerData map[string]any `json:"trigger_data,omitempty"`
}

// FailRunRequest represents the request body for marking a run failed.
type FailRunRequest struct {
	Error string `json:"error" validate:"required"`
}

// ToModel builds the domain workflow a create request describes.
func (r CreateWorkflowRequest) ToModel() *models.Workflow {
	return &models.Workflow{
		OrganizationID: r.OrganizationID,
		Name:           r.Name,
		Description:    r.Description,
		TriggerType:    models.TriggerType(r.TriggerType),
		TriggerConfig:  r.TriggerConfig,
		Steps:          toModelSteps(r.Steps),
	}
}

// ApplyTo merges a partial update onto an existing workflow.
func (r UpdateWorkflowRequest) ApplyTo(workflow *models.Workflow) {
	if r.Name != nil {
		workflow.Name = *r.Name
	}

	if r.Description != nil {
		workflow.Description = *r.Description
	}

	if r.TriggerType != nil {
		workflow.TriggerType = models.TriggerType(*r.TriggerType)
	}

	if r.TriggerConfig != nil {
		workflow.TriggerConfig = r.TriggerConfig
	}

	if r.Steps != nil {
		workflow.Steps = toModelSteps(r.Steps)
	}
}

func toModelSteps(steps []StepRequest) []*models.WorkflowStep {
	result := make([]*models.WorkflowStep, 0, len(steps))

	for _, step := range steps {
		result = append(result, &models.WorkflowStep{
			StepType:     models.StepType(step.StepType),
			ActionType:   models.ActionType(step.ActionType),
			Config:       step.Config,
			ElseGotoStep: step.ElseGotoStep,
		})
	}

	return result
}
