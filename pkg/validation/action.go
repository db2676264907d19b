package validation

import (
	"net/url"

	"github.com/strideapp/flowkit/pkg/models"
)

// validateActionConfig dispatches on the action type. The default arm
// accepts unknown action types without structural checks: the enumeration is
// closed for validation purposes but open for extension, and new action
// kinds degrade to "no validation" rather than "rejected".
func validateActionConfig(actionType models.ActionType, config map[string]any) Result {
	switch actionType {
	case models.ActionSendEmail:
		return validateSendEmail(config)
	case models.ActionSendNotification, models.ActionSendPush:
		return validateSendNotification(config)
	case models.ActionCreateTask:
		return validateCreateTask(config)
	case models.ActionUpdateTask:
		return validateUpdateTask(config)
	case models.ActionUpdateContact:
		return validateUpdateContact(config)
	case models.ActionAddTag, models.ActionRemoveTag:
		return validateTagAction(config)
	case models.ActionAIGenerate:
		return validateAIGenerate(config)
	case models.ActionAICategorize:
		return validateAICategorize(config)
	case models.ActionWebhookCall:
		return validateWebhookCall(config)
	case models.ActionCreateActivity:
		return validateCreateActivity(config)
	default:
		// Accept without structural checks.
		return ok()
	}
}

func validateSendEmail(config map[string]any) Result {
	var errs errorList

	requireNonEmptyString(&errs, config, "to")
	requireNonEmptyString(&errs, config, "subject")
	requireNonEmptyString(&errs, config, "body_html")

	optionalString(&errs, config, "body_text")
	optionalString(&errs, config, "from_name")

	return errs.result()
}

func validateSendNotification(config map[string]any) Result {
	var errs errorList

	requireNonEmptyString(&errs, config, "title")
	requireNonEmptyString(&errs, config, "message")
	requireOneOfFields(&errs, config, "user_id", "user_field")

	return errs.result()
}

func validateCreateTask(config map[string]any) Result {
	var errs errorList

	requireNonEmptyString(&errs, config, "title")
	requireOneOfFields(&errs, config, "project_id", "project_field")

	optionalEnum(&errs, config, "status", "todo", "in_progress", "done")
	optionalEnum(&errs, config, "priority", "low", "medium", "high", "critical")
	optionalString(&errs, config, "assignee_field")
	optionalNonNegativeInt(&errs, config, "due_date_offset_days")

	if _, present, allStrings := getStringList(config, "tags"); present && !allStrings {
		errs.add("config.tags", "Must be a list of strings")
	}

	return errs.result()
}

func validateUpdateTask(config map[string]any) Result {
	var errs errorList

	requireOneOfFields(&errs, config, "task_id", "task_field")

	updates, present, isMap := getMap(config, "updates")

	switch {
	case !present:
		errs.add("config.updates", "Required")
	case !isMap:
		errs.add("config.updates", "Must be an object")
	default:
		validateTaskUpdates(&errs, updates)
	}

	return errs.result()
}

// validateTaskUpdates checks the optional sub-fields of update_task's
// updates object. assignee_id may be explicitly null to clear an assignee.
func validateTaskUpdates(errs *errorList, updates map[string]any) {
	if status, present, isString := getString(updates, "status"); present {
		if !isString || !oneOf(status, "todo", "in_progress", "done") {
			errs.add("config.updates.status", "Invalid enum value")
		}
	}

	if priority, present, isString := getString(updates, "priority"); present {
		if !isString || !oneOf(priority, "low", "medium", "high", "critical") {
			errs.add("config.updates.priority", "Invalid enum value")
		}
	}

	if raw, present := updates["assignee_id"]; present && raw != nil {
		if _, isString := raw.(string); !isString {
			errs.add("config.updates.assignee_id", "Must be a string or null")
		}
	}

	if _, present, isString := getString(updates, "assignee_field"); present && !isString {
		errs.add("config.updates.assignee_field", "Must be a string")
	}

	if _, present, isString := getString(updates, "due_date"); present && !isString {
		errs.add("config.updates.due_date", "Must be a string")
	}

	if offset, present, isInt := getInt(updates, "due_date_offset_days"); present {
		if !isInt || offset < 0 {
			errs.add("config.updates.due_date_offset_days", "Must be a non-negative integer")
		}
	}
}

func validateUpdateContact(config map[string]any) Result {
	var errs errorList

	requireOneOfFields(&errs, config, "contact_id", "contact_field")

	_, present, isMap := getMap(config, "updates")

	switch {
	case !present:
		errs.add("config.updates", "Required")
	case !isMap:
		errs.add("config.updates", "Must be an object")
	}

	return errs.result()
}

func validateTagAction(config map[string]any) Result {
	var errs errorList

	entityType, present, isString := getString(config, "entity_type")

	switch {
	case !present:
		errs.add("config.entity_type", "Required")
	case !isString, !oneOf(entityType, "contact", "company"):
		errs.add("config.entity_type", "Invalid enum value")
	}

	requireNonEmptyString(&errs, config, "entity_field")
	requireNonEmptyString(&errs, config, "tag_name")

	return errs.result()
}

func validateAIGenerate(config map[string]any) Result {
	var errs errorList

	requireNonEmptyString(&errs, config, "prompt_template")
	requireNonEmptyString(&errs, config, "output_field")

	if _, present, isBool := getBool(config, "structured"); present && !isBool {
		errs.add("config.structured", "Must be a boolean")
	}

	return errs.result()
}

func validateAICategorize(config map[string]any) Result {
	var errs errorList

	requireNonEmptyString(&errs, config, "field_to_analyze")
	requireNonEmptyString(&errs, config, "output_field")

	categories, present, isList := getList(config, "categories")

	switch {
	case !present:
		errs.add("config.categories", "Required")
	case !isList:
		errs.add("config.categories", "Must be a list")
	case len(categories) < 2:
		errs.add("config.categories", "At least 2 categories are required")
	}

	return errs.result()
}

func validateWebhookCall(config map[string]any) Result {
	var errs errorList

	rawURL, present, isString := getString(config, "url")

	switch {
	case !present:
		errs.add("config.url", "Required")
	case !isString, !isAbsoluteURL(rawURL):
		errs.add("config.url", "Invalid URL format")
	}

	method, present, isString := getString(config, "method")

	switch {
	case !present:
		errs.add("config.method", "Required")
	case !isString, !oneOf(method, "GET", "POST", "PUT", "PATCH", "DELETE"):
		errs.add("config.method", "Invalid enum value")
	}

	if headers, present, isMap := getMap(config, "headers"); present {
		if !isMap {
			errs.add("config.headers", "Must be an object")
		} else {
			for key, value := range headers {
				if _, ok := value.(string); !ok {
					errs.add("config.headers."+key, "Must be a string")
				}
			}
		}
	}

	optionalString(&errs, config, "body_template")
	optionalString(&errs, config, "output_field")

	if timeout, present, isInt := getInt(config, "timeout_ms"); present {
		if !isInt || timeout < 1000 || timeout > 30000 {
			errs.add("config.timeout_ms", "Must be an integer between 1000 and 30000")
		}
	}

	return errs.result()
}

func validateCreateActivity(config map[string]any) Result {
	var errs errorList

	requireNonEmptyString(&errs, config, "message")
	requireNonEmptyString(&errs, config, "entity_type")
	requireNonEmptyString(&errs, config, "event_type")
	requireOneOfFields(&errs, config, "company_id", "company_field")

	optionalString(&errs, config, "entity_field")

	return errs.result()
}

func isAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(raw)

	return err == nil && parsed.Scheme != "" && parsed.Host != ""
}

func optionalString(errs *errorList, config map[string]any, key string) {
	if _, present, isString := getString(config, key); present && !isString {
		errs.add("config."+key, "Must be a string")
	}
}

func optionalEnum(errs *errorList, config map[string]any, key string, allowed ...string) {
	if value, present, isString := getString(config, key); present {
		if !isString || !oneOf(value, allowed...) {
			errs.add("config."+key, "Invalid enum value")
		}
	}
}

func optionalNonNegativeInt(errs *errorList, config map[string]any, key string) {
	if value, present, isInt := getInt(config, key); present {
		if !isInt || value < 0 {
			errs.add("config."+key, "Must be a non-negative integer")
		}
	}
}
