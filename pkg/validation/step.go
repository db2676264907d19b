package validation

import (
	"github.com/strideapp/flowkit/pkg/models"
)

// ValidateStepConfig validates a step's config against the rules implied by
// its step type and, for action steps, its action type. An action step with
// no action type is a validation error; an unknown step type likewise.
func ValidateStepConfig(stepType models.StepType, actionType models.ActionType, config map[string]any) Result {
	return guarded(func() Result {
		switch stepType {
		case models.StepTypeAction:
			if actionType == "" {
				return fail("Action type is required for action steps")
			}

			return validateActionConfig(actionType, config)
		case models.StepTypeCondition:
			return validateConditionStep(config)
		case models.StepTypeDelay:
			return validateDelayStep(config)
		case models.StepTypeLoop:
			return validateLoopStep(config)
		default:
			return fail("step_type: Unknown step type '" + string(stepType) + "'")
		}
	})
}

// ValidateActionConfig validates an action step's config for the given
// action type. Action types outside the known enumeration are accepted with
// no structural checks; see the default arm in validateActionConfig.
func ValidateActionConfig(actionType models.ActionType, config map[string]any) Result {
	return guarded(func() Result {
		return validateActionConfig(actionType, config)
	})
}

func validateConditionStep(config map[string]any) Result {
	var errs errorList

	requireNonEmptyString(&errs, config, "field")

	operator, present, isString := getString(config, "operator")

	switch {
	case !present:
		errs.add("config.operator", "Required")
	case !isString, !isConditionOperator(operator):
		errs.add("config.operator", "Invalid enum value")
	}

	// value is optional and may be of any type.

	return errs.result()
}

func isConditionOperator(candidate string) bool {
	for _, op := range models.ConditionOperators() {
		if candidate == string(op) {
			return true
		}
	}

	return false
}

func validateDelayStep(config map[string]any) Result {
	var errs errorList

	delayType, present, isString := getString(config, "delay_type")

	switch {
	case !present:
		errs.add("config.delay_type", "Required")
	case !isString, !oneOf(delayType, "minutes", "hours", "days"):
		errs.add("config.delay_type", "Invalid enum value")
	}

	delayValue, present, isInt := getInt(config, "delay_value")

	switch {
	case !present:
		errs.add("config.delay_value", "Required")
	case !isInt, delayValue < 1:
		errs.add("config.delay_value", "Must be a positive integer")
	}

	return errs.result()
}

func validateLoopStep(config map[string]any) Result {
	var errs errorList

	requireNonEmptyString(&errs, config, "collection_field")
	requireNonEmptyString(&errs, config, "item_variable")

	if maxIterations, present, isInt := getInt(config, "max_iterations"); present {
		if !isInt || maxIterations < 1 || maxIterations > 1000 {
			errs.add("config.max_iterations", "Must be an integer between 1 and 1000")
		}
	}

	return errs.result()
}

// requireNonEmptyString records an error unless config carries a non-empty
// string at key.
func requireNonEmptyString(errs *errorList, config map[string]any, key string) {
	value, present, isString := getString(config, key)

	switch {
	case !present:
		errs.add("config."+key, "Required")
	case !isString:
		errs.add("config."+key, "Must be a string")
	case value == "":
		errs.add("config."+key, "Must not be empty")
	}
}

// requireOneOfFields records a schema-level error unless at least one of the
// keys is present as a non-empty string. Cross-field "at least one of"
// invariants cannot be expressed by per-field optionality alone.
func requireOneOfFields(errs *errorList, config map[string]any, first, second string) {
	if hasNonEmptyString(config, first) || hasNonEmptyString(config, second) {
		return
	}

	errs.add("config", "Either "+first+" or "+second+" must be provided")
}

func hasNonEmptyString(config map[string]any, key string) bool {
	value, present, isString := getString(config, key)

	return present && isString && value != ""
}
