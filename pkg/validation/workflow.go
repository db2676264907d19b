package validation

import (
	"fmt"
	"unicode/utf8"

	"github.com/strideapp/flowkit/pkg/models"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 2000
)

// ValidateWorkflow validates an entire workflow document end to end.
//
// The check is two-phase. The envelope (name, description, trigger type,
// trigger config presence) is validated first and short-circuits on failure:
// trigger and step semantics are meaningless against a malformed envelope.
// Once the envelope passes, the body is validated exhaustively — trigger
// config and every step — and all errors are returned together, prefixed
// with their location, so a single call surfaces every problem at once.
func ValidateWorkflow(workflow *models.Workflow) Result {
	return guarded(func() Result {
		if workflow == nil {
			return fail("Workflow document is required")
		}

		if envelope := validateEnvelope(workflow); !envelope.Valid {
			return envelope
		}

		var errs errorList

		errs.merge("trigger_config.", ValidateTriggerConfig(workflow.TriggerType, workflow.TriggerConfig))

		for i, step := range workflow.Steps {
			prefix := fmt.Sprintf("steps[%d].", i)

			if step == nil {
				errs.add("", prefix+"Step is required")
				continue
			}

			errs.merge(prefix, ValidateStepConfig(step.StepType, step.ActionType, step.Config))
			validateBranchTarget(&errs, prefix, step, len(workflow.Steps))
		}

		return errs.result()
	})
}

func validateEnvelope(workflow *models.Workflow) Result {
	var errs errorList

	// Length limits are in characters, not bytes: multibyte names count by
	// rune.
	switch {
	case workflow.Name == "":
		errs.add("name", "Required")
	case utf8.RuneCountInString(workflow.Name) > maxNameLength:
		errs.addf("name", "Must be at most %d characters", maxNameLength)
	}

	if utf8.RuneCountInString(workflow.Description) > maxDescriptionLength {
		errs.addf("description", "Must be at most %d characters", maxDescriptionLength)
	}

	switch {
	case workflow.TriggerType == "":
		errs.add("trigger_type", "Required")
	case !models.IsValidTriggerType(workflow.TriggerType):
		errs.add("trigger_type", "Invalid enum value")
	}

	if workflow.TriggerConfig == nil {
		errs.add("trigger_config", "Required")
	}

	return errs.result()
}

// validateBranchTarget checks the else_goto_step jump of a condition step.
// Targets are raw indices into the step sequence; an out-of-range jump
// would be undefined behavior at execution time, so it is rejected at
// definition time.
func validateBranchTarget(errs *errorList, prefix string, step *models.WorkflowStep, stepCount int) {
	if step.StepType != models.StepTypeCondition || step.ElseGotoStep == nil {
		return
	}

	target := *step.ElseGotoStep
	if target < 0 || target >= stepCount {
		errs.addf("", "%selse_goto_step: Step index %d is out of range for %d steps", prefix, target, stepCount)
	}
}
