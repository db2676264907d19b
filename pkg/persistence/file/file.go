// Package file provides file-based persistence for workflows and runs,
// intended for development and tests.
package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/strideapp/flowkit/pkg/persistence"
)

// Persistence implements persistence.Persistence on top of a directory of
// JSON files: one file per workflow under workflows/, one per run under runs/.
type Persistence struct {
	root         string
	workflowRepo *WorkflowRepository
	runRepo      *RunRepository
}

// NewPersistence creates a new file persistence rooted at the given directory.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:         cleanRoot,
		workflowRepo: NewWorkflowRepository(filepath.Join(cleanRoot, "workflows")),
		runRepo:      NewRunRepository(filepath.Join(cleanRoot, "runs")),
	}
}

func (p *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return p.workflowRepo
}

func (p *Persistence) RunRepository() persistence.RunRepository {
	return p.runRepo
}

// HealthCheck verifies the root directory exists.
func (p *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(p.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close is a no-op for file persistence.
func (p *Persistence) Close(_ context.Context) error {
	return nil
}
