package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strideapp/flowkit/pkg/models"
	"github.com/strideapp/flowkit/pkg/persistence/file"
	"github.com/strideapp/flowkit/pkg/services"
	"github.com/strideapp/flowkit/pkg/web"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	persistence := file.NewPersistence(t.TempDir())
	workflowService := services.NewWorkflow(persistence, nil)
	runService := services.NewRun(persistence, nil)
	validate := validator.New(validator.WithRequiredStructEnabled())

	handlers := web.NewAPIHandlers(workflowService, runService, validate)

	app := fiber.New()

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Post("/validate", handlers.ValidateWorkflow)
	w.Get("/:id", handlers.GetWorkflow)
	w.Patch("/:id", handlers.UpdateWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)
	w.Post("/:id/activate", handlers.ActivateWorkflow)
	w.Post("/:id/deactivate", handlers.DeactivateWorkflow)
	w.Post("/:id/runs", handlers.StartRun)
	w.Get("/:id/runs", handlers.GetWorkflowRuns)

	r := app.Group("/runs")
	r.Get("/:id", handlers.GetRun)
	r.Post("/:id/cancel", handlers.CancelRun)
	r.Post("/:id/complete", handlers.CompleteRun)
	r.Post("/:id/fail", handlers.FailRun)
	r.Post("/:id/pause", handlers.PauseRun)
	r.Post("/:id/resume", handlers.ResumeRun)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	return req
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, target))
}

func createRequestBody() web.CreateWorkflowRequest {
	return web.CreateWorkflowRequest{
		OrganizationID: "org-1",
		Name:           "Welcome sequence",
		TriggerType:    "event",
		TriggerConfig: map[string]any{
			"event_types": []any{"contact.created"},
		},
		Steps: []web.StepRequest{
			{
				StepType:   "action",
				ActionType: "send_email",
				Config: map[string]any{
					"to":        "{{contact.email}}",
					"subject":   "Welcome",
					"body_html": "<p>Hello</p>",
				},
			},
		},
	}
}

func createTestWorkflow(t *testing.T, app *fiber.App) models.Workflow {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/workflows", createRequestBody()))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var workflow models.Workflow
	decodeBody(t, resp, &workflow)

	return workflow
}

func activateTestWorkflow(t *testing.T, app *fiber.App, id string) {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/workflows/"+id+"/activate", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateWorkflow(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	workflow := createTestWorkflow(t, app)
	assert.NotEmpty(t, workflow.ID)
	assert.Equal(t, "Welcome sequence", workflow.Name)
	assert.False(t, workflow.IsActive)
}

func TestCreateWorkflow_InvalidDocument(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	body := createRequestBody()
	body.TriggerConfig = map[string]any{"schedule_type": "hourly"}
	body.TriggerType = "schedule"

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/workflows", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var result struct {
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors"`
	}
	decodeBody(t, resp, &result)

	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)

	for _, message := range result.Errors {
		assert.Contains(t, message, "trigger_config.")
	}
}

func TestCreateWorkflow_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/workflows", web.CreateWorkflowRequest{}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateWorkflow_InvalidJSON(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/workflows", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetWorkflow(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	created := createTestWorkflow(t, app)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/workflows/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var workflow models.Workflow
	decodeBody(t, resp, &workflow)
	assert.Equal(t, created.ID, workflow.ID)
}

func TestGetWorkflow_NotFound(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/workflows/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetWorkflows(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	createTestWorkflow(t, app)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/workflows/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Workflows []models.Workflow `json:"workflows"`
	}
	decodeBody(t, resp, &result)
	assert.Len(t, result.Workflows, 1)
}

func TestUpdateWorkflow(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	created := createTestWorkflow(t, app)

	newName := "Renamed sequence"
	resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/workflows/"+created.ID, web.UpdateWorkflowRequest{
		Name: &newName,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var workflow models.Workflow
	decodeBody(t, resp, &workflow)
	assert.Equal(t, newName, workflow.Name)
}

func TestUpdateWorkflow_InvalidStepRejected(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	created := createTestWorkflow(t, app)

	resp, err := app.Test(jsonRequest(t, http.MethodPatch, "/workflows/"+created.ID, web.UpdateWorkflowRequest{
		Steps: []web.StepRequest{
			{StepType: "action", Config: map[string]any{}},
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var result struct {
		Errors []string `json:"errors"`
	}
	decodeBody(t, resp, &result)
	assert.Equal(t, []string{"steps[0].Action type is required for action steps"}, result.Errors)
}

func TestDeleteWorkflow(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	created := createTestWorkflow(t, app)

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/workflows/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/workflows/"+created.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidateWorkflow(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/workflows/validate", createRequestBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors"`
	}
	decodeBody(t, resp, &result)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)

	body := createRequestBody()
	body.Name = ""

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/workflows/validate", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "validation endpoint reports problems in the body, not the status")

	decodeBody(t, resp, &result)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "name: Required")
}

func TestActivateDeactivateWorkflow(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	created := createTestWorkflow(t, app)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/workflows/"+created.ID+"/activate", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var workflow models.Workflow
	decodeBody(t, resp, &workflow)
	assert.True(t, workflow.IsActive)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/workflows/"+created.ID+"/deactivate", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	decodeBody(t, resp, &workflow)
	assert.False(t, workflow.IsActive)
}

func TestStartRun(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	created := createTestWorkflow(t, app)
	activateTestWorkflow(t, app, created.ID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/workflows/"+created.ID+"/runs", web.StartRunRequest{
		TriggerData: map[string]any{"user_id": "u-1"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var run models.WorkflowRun
	decodeBody(t, resp, &run)
	assert.Equal(t, created.ID, run.WorkflowID)
	assert.Equal(t, models.RunStatusRunning, run.Status)
}

func TestStartRun_InactiveWorkflow(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	created := createTestWorkflow(t, app)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/workflows/"+created.ID+"/runs", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRunLifecycleEndpoints(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	created := createTestWorkflow(t, app)
	activateTestWorkflow(t, app, created.ID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/workflows/"+created.ID+"/runs", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var run models.WorkflowRun
	decodeBody(t, resp, &run)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/runs/"+run.ID+"/pause", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/runs/"+run.ID+"/resume", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/runs/"+run.ID+"/complete", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var completed models.WorkflowRun
	decodeBody(t, resp, &completed)
	assert.Equal(t, models.RunStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	// Terminal runs cannot be cancelled.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/runs/"+run.ID+"/cancel", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestFailRun(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	created := createTestWorkflow(t, app)
	activateTestWorkflow(t, app, created.ID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/workflows/"+created.ID+"/runs", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var run models.WorkflowRun
	decodeBody(t, resp, &run)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/runs/"+run.ID+"/fail", web.FailRunRequest{
		Error: "send_email step timed out",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var failed models.WorkflowRun
	decodeBody(t, resp, &failed)
	assert.Equal(t, models.RunStatusFailed, failed.Status)
	assert.Equal(t, "send_email step timed out", failed.ErrorMessage)
}

func TestGetWorkflowRuns(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)
	created := createTestWorkflow(t, app)
	activateTestWorkflow(t, app, created.ID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/workflows/"+created.ID+"/runs", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/workflows/"+created.ID+"/runs", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Runs []models.WorkflowRun `json:"runs"`
	}
	decodeBody(t, resp, &result)
	assert.Len(t, result.Runs, 1)
}

func TestGetRun_NotFound(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/runs/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Status string `json:"status"`
	}
	decodeBody(t, resp, &result)
	assert.Equal(t, "healthy", result.Status)
}
