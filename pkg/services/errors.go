// Package services provides the business logic layer between the HTTP
// handlers and persistence.
package services

import (
	"errors"
	"strings"

	"github.com/strideapp/flowkit/pkg/models"
)

// Business logic errors. Validation errors map to 400 responses, conflicts
// to 409.
var (
	ErrWorkflowNil       = errors.New("workflow cannot be nil")
	ErrWorkflowInactive  = errors.New("workflow is not active")
	ErrRunNotCancellable = errors.New("run cannot be cancelled in its current status")
)

// ValidationError carries the full path-qualified error list produced by the
// workflow validator, so the API can surface every problem in one response.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "workflow validation failed: " + strings.Join(e.Errors, "; ")
}

// NewValidationError wraps a validator error list.
func NewValidationError(errs []string) *ValidationError {
	return &ValidationError{Errors: errs}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}

	return nil, false
}

// IsValidationError checks if an error should map to HTTP 400.
func IsValidationError(err error) bool {
	if _, ok := AsValidationError(err); ok {
		return true
	}

	return errors.Is(err, ErrWorkflowNil)
}

// IsConflictError checks if an error should map to HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrWorkflowInactive) ||
		errors.Is(err, ErrRunNotCancellable) ||
		errors.Is(err, models.ErrInvalidRunTransition)
}
