package persistence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkflowError_WrapsSentinel(t *testing.T) {
	err := NewWorkflowError("GetByID", "wf-1", ErrWorkflowNotFound)

	assert.True(t, IsWorkflowNotFound(err))
	assert.True(t, errors.Is(err, ErrWorkflowNotFound))
	assert.Contains(t, err.Error(), "GetByID")
	assert.Contains(t, err.Error(), "wf-1")
}

func TestWorkflowDeleted_IsAlsoNotFound(t *testing.T) {
	err := NewWorkflowError("GetByID", "wf-1", ErrWorkflowDeleted)

	assert.True(t, IsWorkflowDeleted(err))
	assert.True(t, IsWorkflowNotFound(err))

	// A plain not-found is not a deletion.
	assert.False(t, IsWorkflowDeleted(NewWorkflowError("GetByID", "wf-2", ErrWorkflowNotFound)))
}

func TestRunError_WrapsSentinel(t *testing.T) {
	err := NewRunError("Save", "run-1", ErrRunNotFound)

	assert.True(t, IsRunNotFound(err))
	assert.False(t, IsWorkflowNotFound(err))
	assert.Contains(t, err.Error(), "run-1")
}

func TestIsHelpers_UnrelatedErrors(t *testing.T) {
	assert.False(t, IsWorkflowNotFound(errors.New("boom")))
	assert.False(t, IsRunNotFound(nil))
}
