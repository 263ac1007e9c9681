package domain

// RuleType classifies an iteration rule. Wire values are single letters.
type RuleType string

const (
	// RuleTypeFilter excludes a cohort to NotEligible.
	RuleTypeFilter RuleType = "F"
	// RuleTypeSuppression excludes a cohort to NotActionable.
	RuleTypeSuppression RuleType = "S"
	// RuleTypeRedirect selects communication actions for an Actionable outcome.
	RuleTypeRedirect RuleType = "R"
	// RuleTypeNotEligibleAction selects actions for a NotEligible outcome.
	RuleTypeNotEligibleAction RuleType = "X"
	// RuleTypeNotActionableAction selects actions for a NotActionable outcome.
	RuleTypeNotActionableAction RuleType = "Y"
)

// ExclusionStatus returns the status a patient is moved to when a rule of
// this type matches.
func (t RuleType) ExclusionStatus() Status {
	switch t {
	case RuleTypeFilter, RuleTypeNotEligibleAction:
		return StatusNotEligible
	case RuleTypeSuppression, RuleTypeNotActionableAction:
		return StatusNotActionable
	default:
		return StatusActionable
	}
}

// AttributeLevel names the patient data record a rule's attribute is read
// from.
type AttributeLevel string

const (
	// AttributeLevelPerson reads from the single PERSON demographic record.
	AttributeLevelPerson AttributeLevel = "PERSON"
	// AttributeLevelTarget reads from the record whose type equals the
	// rule's AttributeTarget (e.g. "RSV").
	AttributeLevelTarget AttributeLevel = "TARGET"
	// AttributeLevelCohort compares against the patient's comma-joined
	// cohort memberships.
	AttributeLevelCohort AttributeLevel = "COHORT"
)

// Operator names a comparison predicate registered in the operator registry.
type Operator string

const (
	OperatorEquals    Operator = "="
	OperatorNotEquals Operator = "!="
	OperatorGT        Operator = ">"
	OperatorGTE       Operator = ">="
	OperatorLT        Operator = "<"
	OperatorLTE       Operator = "<="

	OperatorContains      Operator = "contains"
	OperatorNotContains   Operator = "not_contains"
	OperatorStartsWith    Operator = "starts_with"
	OperatorNotStartsWith Operator = "not_starts_with"
	OperatorEndsWith      Operator = "ends_with"

	OperatorIn           Operator = "in"
	OperatorNotIn        Operator = "not_in"
	OperatorMemberOf     Operator = "MemberOf"
	OperatorNotaMemberOf Operator = "NotaMemberOf"

	OperatorIsNull    Operator = "is_null"
	OperatorIsNotNull Operator = "is_not_null"

	OperatorBetween    Operator = "between"
	OperatorNotBetween Operator = "not_between"

	OperatorIsEmpty    Operator = "is_empty"
	OperatorIsNotEmpty Operator = "is_not_empty"
	OperatorIsTrue     Operator = "is_true"
	OperatorIsFalse    Operator = "is_false"

	OperatorDayLT   Operator = "day_lt"
	OperatorDayLTE  Operator = "day_lte"
	OperatorDayGT   Operator = "day_gt"
	OperatorDayGTE  Operator = "day_gte"
	OperatorWeekLT  Operator = "week_lt"
	OperatorWeekLTE Operator = "week_lte"
	OperatorWeekGT  Operator = "week_gt"
	OperatorWeekGTE Operator = "week_gte"
	OperatorYearLT  Operator = "year_lt"
	OperatorYearLTE Operator = "year_lte"
	OperatorYearGT  Operator = "year_gt"
	OperatorYearGTE Operator = "year_gte"
)

// IterationRule is a single predicate (attribute + operator + comparator)
// tagged with a type, priority, and optional cohort scope.
type IterationRule struct {
	Type        RuleType `json:"Type"`
	Name        string   `json:"Name"`
	Code        string   `json:"Code,omitempty"`
	Description string   `json:"Description,omitempty"`

	// Priority orders evaluation; lower sorts first. Rules sharing a
	// priority form a group evaluated with AND semantics.
	Priority int `json:"Priority"`

	AttributeLevel  AttributeLevel `json:"AttributeLevel"`
	AttributeName   string         `json:"AttributeName,omitempty"`
	AttributeTarget string         `json:"AttributeTarget,omitempty"`

	Operator   Operator `json:"Operator"`
	Comparator string   `json:"Comparator"`

	// CohortLabel scopes the rule to one cohort. Nil applies to all cohorts.
	CohortLabel *string `json:"CohortLabel,omitempty"`

	// RuleStop halts evaluation of lower-priority suppression groups once
	// this rule's group excludes.
	RuleStop YesNo `json:"RuleStop,omitempty"`

	// CommsRouting overrides the iteration default action routing when an
	// action-selection rule group matches.
	CommsRouting string `json:"CommsRouting,omitempty"`
}

// AppliesTo reports whether the rule is in scope for a cohort label.
func (r *IterationRule) AppliesTo(cohortLabel string) bool {
	return r.CohortLabel == nil || *r.CohortLabel == "" || *r.CohortLabel == cohortLabel
}
