package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strideapp/flowkit/pkg/models"
	"github.com/strideapp/flowkit/pkg/persistence"
	"github.com/strideapp/flowkit/pkg/persistence/file"
)

func newTestWorkflowService(t *testing.T) (*Workflow, persistence.Persistence) {
	t.Helper()

	store := file.NewPersistence(t.TempDir())

	return NewWorkflow(store, nil), store
}

func validWorkflow() *models.Workflow {
	return &models.Workflow{
		Name:        "Welcome sequence",
		TriggerType: models.TriggerTypeEvent,
		TriggerConfig: map[string]any{
			"event_types": []any{"contact.created"},
		},
		Steps: []*models.WorkflowStep{
			{
				StepType:   models.StepTypeAction,
				ActionType: models.ActionSendEmail,
				Config: map[string]any{
					"to":        "{{contact.email}}",
					"subject":   "Welcome",
					"body_html": "<p>Hello</p>",
				},
			},
		},
	}
}

func TestWorkflowService_Create(t *testing.T) {
	t.Parallel()

	service, _ := newTestWorkflowService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, validWorkflow())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IsActive, "new workflows start inactive")

	fetched, err := service.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, fetched.Name)
}

func TestWorkflowService_CreateInvalid(t *testing.T) {
	t.Parallel()

	service, _ := newTestWorkflowService(t)
	ctx := context.Background()

	workflow := validWorkflow()
	workflow.Name = ""

	_, err := service.Create(ctx, workflow)
	require.Error(t, err)

	validationErr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, validationErr.Errors, "name: Required")
	assert.True(t, IsValidationError(err))
}

func TestWorkflowService_CreateNil(t *testing.T) {
	t.Parallel()

	service, _ := newTestWorkflowService(t)

	_, err := service.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrWorkflowNil)
	assert.True(t, IsValidationError(err))
}

func TestWorkflowService_Update(t *testing.T) {
	t.Parallel()

	service, _ := newTestWorkflowService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, validWorkflow())
	require.NoError(t, err)

	updated := validWorkflow()
	updated.Name = "Renamed sequence"

	result, err := service.Update(ctx, created.ID, updated)
	require.NoError(t, err)
	assert.Equal(t, created.ID, result.ID)
	assert.Equal(t, "Renamed sequence", result.Name)
	assert.Equal(t, created.CreatedAt, result.CreatedAt)
}

func TestWorkflowService_UpdateInvalidRejected(t *testing.T) {
	t.Parallel()

	service, _ := newTestWorkflowService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, validWorkflow())
	require.NoError(t, err)

	broken := validWorkflow()
	broken.TriggerConfig = map[string]any{}

	_, err = service.Update(ctx, created.ID, broken)
	require.Error(t, err)

	fetched, err := service.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome sequence", fetched.Name, "rejected update must not persist")
}

func TestWorkflowService_UpdateMissing(t *testing.T) {
	t.Parallel()

	service, _ := newTestWorkflowService(t)

	_, err := service.Update(context.Background(), "does-not-exist", validWorkflow())
	assert.ErrorIs(t, err, persistence.ErrWorkflowNotFound)
}

func TestWorkflowService_ActivateDeactivate(t *testing.T) {
	t.Parallel()

	service, _ := newTestWorkflowService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, validWorkflow())
	require.NoError(t, err)

	activated, err := service.Activate(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	deactivated, err := service.Deactivate(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
}

func TestWorkflowService_ActivateRevalidates(t *testing.T) {
	t.Parallel()

	service, store := newTestWorkflowService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, validWorkflow())
	require.NoError(t, err)

	// Corrupt the stored document behind the service's back.
	created.TriggerConfig = map[string]any{"event_types": []any{}}
	require.NoError(t, store.WorkflowRepository().Save(ctx, created))

	_, err = service.Activate(ctx, created.ID)
	require.Error(t, err)

	validationErr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, validationErr.Errors, "trigger_config.event_types: At least one event type is required")
}

func TestWorkflowService_Delete(t *testing.T) {
	t.Parallel()

	service, _ := newTestWorkflowService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, validWorkflow())
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	_, err = service.FetchByID(ctx, created.ID)
	assert.ErrorIs(t, err, persistence.ErrWorkflowNotFound)
}

func TestWorkflowService_List(t *testing.T) {
	t.Parallel()

	service, _ := newTestWorkflowService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, validWorkflow())
	require.NoError(t, err)

	second := validWorkflow()
	second.Name = "Second sequence"
	_, err = service.Create(ctx, second)
	require.NoError(t, err)

	workflows, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, workflows, 2)
}

func TestWorkflowService_ListActive(t *testing.T) {
	t.Parallel()

	service, _ := newTestWorkflowService(t)
	ctx := context.Background()

	first, err := service.Create(ctx, validWorkflow())
	require.NoError(t, err)

	second := validWorkflow()
	second.Name = "Second sequence"
	_, err = service.Create(ctx, second)
	require.NoError(t, err)

	_, err = service.Activate(ctx, first.ID)
	require.NoError(t, err)

	active, err := service.ListActive(ctx)
	require.NoError(t, err)

	if assert.Len(t, active, 1) {
		assert.Equal(t, first.ID, active[0].ID)
	}
}

func TestWorkflowService_Validate(t *testing.T) {
	t.Parallel()

	service, _ := newTestWorkflowService(t)

	result := service.Validate(validWorkflow())
	assert.True(t, result.Valid)

	broken := validWorkflow()
	broken.Steps[0].ActionType = ""

	result = service.Validate(broken)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"steps[0].Action type is required for action steps"}, result.Errors)
}

func TestWorkflowService_HealthCheck(t *testing.T) {
	t.Parallel()

	service, _ := newTestWorkflowService(t)

	message, healthy := service.HealthCheck(context.Background())
	assert.True(t, healthy)
	assert.NotEmpty(t, message)
}
