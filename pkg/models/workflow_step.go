package models

// StepType identifies the execution semantics of a workflow step.
type StepType string

const (
	StepTypeAction    StepType = "action"    // Performs a side-effecting operation (ActionType selects which)
	StepTypeCondition StepType = "condition" // Evaluates a field against an operator, may branch on false
	StepTypeDelay     StepType = "delay"     // Pauses the run for a fixed interval
	StepTypeLoop      StepType = "loop"      // Iterates over a collection field
)

// IsValidStepType reports whether t is one of the supported step types.
func IsValidStepType(t StepType) bool {
	switch t {
	case StepTypeAction, StepTypeCondition, StepTypeDelay, StepTypeLoop:
		return true
	default:
		return false
	}
}

// ActionType identifies the operation an action step performs.
type ActionType string

const (
	ActionSendEmail             ActionType = "send_email"
	ActionSendNotification      ActionType = "send_notification"
	ActionSendPush              ActionType = "send_push"
	ActionCreateTask            ActionType = "create_task"
	ActionUpdateTask            ActionType = "update_task"
	ActionBulkUpdateTasks       ActionType = "bulk_update_tasks"
	ActionCreateContact         ActionType = "create_contact"
	ActionUpdateContact         ActionType = "update_contact"
	ActionAddTag                ActionType = "add_tag"
	ActionRemoveTag             ActionType = "remove_tag"
	ActionUpdateOpportunity     ActionType = "update_opportunity"
	ActionCreateProjectFromOpp  ActionType = "create_project_from_opportunity"
	ActionCreateProject         ActionType = "create_project"
	ActionCreateProjectFromTmpl ActionType = "create_project_from_template"
	ActionAIGenerate            ActionType = "ai_generate"
	ActionAICategorize          ActionType = "ai_categorize"
	ActionAISummarize           ActionType = "ai_summarize"
	ActionWebhookCall           ActionType = "webhook_call"
	ActionCreateActivity        ActionType = "create_activity"
)

// ActionTypes lists every known action type. Action types outside this list
// are still accepted by the validator with no structural checks, so the set
// stays open for forward compatibility.
func ActionTypes() []ActionType {
	return []ActionType{
		ActionSendEmail, ActionSendNotification, ActionSendPush,
		ActionCreateTask, ActionUpdateTask, ActionBulkUpdateTasks,
		ActionCreateContact, ActionUpdateContact,
		ActionAddTag, ActionRemoveTag,
		ActionUpdateOpportunity, ActionCreateProjectFromOpp,
		ActionCreateProject, ActionCreateProjectFromTmpl,
		ActionAIGenerate, ActionAICategorize, ActionAISummarize,
		ActionWebhookCall, ActionCreateActivity,
	}
}

// ConditionOperator is the comparison applied by a condition step.
type ConditionOperator string

const (
	OperatorEquals      ConditionOperator = "equals"
	OperatorNotEquals   ConditionOperator = "not_equals"
	OperatorContains    ConditionOperator = "contains"
	OperatorNotContains ConditionOperator = "not_contains"
	OperatorStartsWith  ConditionOperator = "starts_with"
	OperatorEndsWith    ConditionOperator = "ends_with"
	OperatorGT          ConditionOperator = "gt"
	OperatorGTE         ConditionOperator = "gte"
	OperatorLT          ConditionOperator = "lt"
	OperatorLTE         ConditionOperator = "lte"
	OperatorIsEmpty     ConditionOperator = "is_empty"
	OperatorIsNotEmpty  ConditionOperator = "is_not_empty"
	OperatorIn          ConditionOperator = "in"
	OperatorNotIn       ConditionOperator = "not_in"
)

// ConditionOperators lists the fixed operator set for condition steps.
func ConditionOperators() []ConditionOperator {
	return []ConditionOperator{
		OperatorEquals, OperatorNotEquals,
		OperatorContains, OperatorNotContains,
		OperatorStartsWith, OperatorEndsWith,
		OperatorGT, OperatorGTE, OperatorLT, OperatorLTE,
		OperatorIsEmpty, OperatorIsNotEmpty,
		OperatorIn, OperatorNotIn,
	}
}

// WorkflowStep is one unit of execution within a workflow, addressed by its
// zero-based position in the workflow's step sequence. Steps are owned by
// their workflow and are not independently addressable.
type WorkflowStep struct {
	StepType   StepType       `json:"step_type"             validate:"required"`
	ActionType ActionType     `json:"action_type,omitempty"`
	Config     map[string]any `json:"config"`

	// ElseGotoStep is the index to jump to when a condition step evaluates
	// false. Nil means fall through to the next step. Only meaningful for
	// condition steps; the index must lie within the owning workflow's
	// step sequence.
	ElseGotoStep *int `json:"else_goto_step,omitempty"`
}

// IsAction reports whether the step performs a side-effecting action.
func (s *WorkflowStep) IsAction() bool {
	return s.StepType == StepTypeAction
}
