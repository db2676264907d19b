package validation

import (
	"regexp"

	"github.com/robfig/cron/v3"

	"github.com/strideapp/flowkit/pkg/models"
)

// timeOfDayPattern matches HH:MM with a two-digit hour 00-23 and two-digit
// minute 00-59. "9:5" and "24:00" are both rejected.
var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateTriggerConfig decides whether config is structurally valid for the
// given trigger type. An unknown trigger type is itself a validation
// failure, not a crash.
func ValidateTriggerConfig(triggerType models.TriggerType, config map[string]any) Result {
	return guarded(func() Result {
		switch triggerType {
		case models.TriggerTypeEvent:
			return validateEventTrigger(config)
		case models.TriggerTypeSchedule:
			return validateScheduleTrigger(config)
		case models.TriggerTypeWebhook:
			return validateWebhookTrigger(config)
		case models.TriggerTypeManual:
			return validateManualTrigger(config)
		default:
			return fail("trigger_type: Unknown trigger type '" + string(triggerType) + "'")
		}
	})
}

func validateEventTrigger(config map[string]any) Result {
	var errs errorList

	eventTypes, present, allStrings := getStringList(config, "event_types")

	switch {
	case !present:
		errs.add("event_types", "Required")
	case !allStrings:
		errs.add("event_types", "Must be a list of strings")
	case len(eventTypes) == 0:
		errs.add("event_types", "At least one event type is required")
	}

	if _, present, isString := getString(config, "entity_type"); present && !isString {
		errs.add("entity_type", "Must be a string")
	}

	if _, present, isMap := getMap(config, "filters"); present && !isMap {
		errs.add("filters", "Must be an object")
	}

	return errs.result()
}

func validateScheduleTrigger(config map[string]any) Result {
	var errs errorList

	scheduleType, present, isString := getString(config, "schedule_type")

	switch {
	case !present:
		errs.add("schedule_type", "Required")
	case !isString, !oneOf(scheduleType, "daily", "weekly", "monthly", "cron"):
		errs.add("schedule_type", "Invalid enum value")
	}

	if timeOfDay, present, isString := getString(config, "time"); present {
		if !isString || !timeOfDayPattern.MatchString(timeOfDay) {
			errs.add("time", "Must match HH:MM format")
		}
	}

	if dayOfWeek, present, isInt := getInt(config, "day_of_week"); present {
		if !isInt || dayOfWeek < 0 || dayOfWeek > 6 {
			errs.add("day_of_week", "Must be an integer between 0 and 6")
		}
	}

	if dayOfMonth, present, isInt := getInt(config, "day_of_month"); present {
		if !isInt || dayOfMonth < 1 || dayOfMonth > 31 {
			errs.add("day_of_month", "Must be an integer between 1 and 31")
		}
	}

	if expr, present, isString := getString(config, "cron"); present {
		if !isString {
			errs.add("cron", "Must be a string")
		} else if _, err := cron.ParseStandard(expr); err != nil {
			errs.add("cron", "Invalid cron expression")
		}
	}

	if _, present, isString := getString(config, "timezone"); present && !isString {
		errs.add("timezone", "Must be a string")
	}

	return errs.result()
}

func validateWebhookTrigger(config map[string]any) Result {
	var errs errorList

	if _, present, isString := getString(config, "secret"); present && !isString {
		errs.add("secret", "Must be a string")
	}

	if _, present, allStrings := getStringList(config, "allowed_ips"); present && !allStrings {
		errs.add("allowed_ips", "Must be a list of strings")
	}

	// The optional payload schema is evaluated against inbound payloads at
	// dispatch time; here it only needs to be an object.
	if _, present, isMap := getMap(config, "payload_schema"); present && !isMap {
		errs.add("payload_schema", "Must be an object")
	}

	return errs.result()
}

func validateManualTrigger(config map[string]any) Result {
	var errs errorList

	if _, present, isString := getString(config, "description"); present && !isString {
		errs.add("description", "Must be a string")
	}

	return errs.result()
}
