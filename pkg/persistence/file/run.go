package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/strideapp/flowkit/pkg/models"
	"github.com/strideapp/flowkit/pkg/persistence"
)

// RunRepository stores each workflow run as <dir>/<id>.json.
type RunRepository struct {
	dir string
	mu  sync.RWMutex
}

func NewRunRepository(dir string) *RunRepository {
	return &RunRepository{dir: dir}
}

func (r *RunRepository) GetByID(_ context.Context, id string) (*models.WorkflowRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.read(r.path(id))
}

func (r *RunRepository) ListByWorkflow(_ context.Context, workflowID string) ([]*models.WorkflowRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.dir)
	if os.IsNotExist(err) {
		return []*models.WorkflowRun{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	runs := make([]*models.WorkflowRun, 0)

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		run, err := r.read(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		if run.WorkflowID == workflowID {
			runs = append(runs, run)
		}
	}

	// Newest first, matching the SQL adapter's ordering.
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	return runs, nil
}

func (r *RunRepository) Save(_ context.Context, run *models.WorkflowRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate run ID: %w", err)
		}

		run.ID = id.String()
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create runs directory: %w", err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run %s: %w", run.ID, err)
	}

	if err := os.WriteFile(r.path(run.ID), data, fileMode); err != nil {
		return fmt.Errorf("failed to write run %s: %w", run.ID, err)
	}

	return nil
}

func (r *RunRepository) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}

func (r *RunRepository) read(path string) (*models.WorkflowRun, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		id := filepath.Base(path)

		return nil, persistence.NewRunError("GetByID", id, persistence.ErrRunNotFound)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read run file %s: %w", path, err)
	}

	var run models.WorkflowRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run file %s: %w", path, err)
	}

	return &run, nil
}
