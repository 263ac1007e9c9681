package domain

// Reason captures why a rule fired (or was attempted), for both user-facing
// suitability text and the audit trail.
type Reason struct {
	RuleType     RuleType `json:"rule_type"`
	RuleName     string   `json:"rule_name"`
	RuleCode     string   `json:"rule_code,omitempty"`
	RulePriority int      `json:"rule_priority"`
	RuleText     string   `json:"rule_text,omitempty"`
	Matched      bool     `json:"matched"`
}

// ReasonKey identifies a reason for deduplication purposes.
type ReasonKey struct {
	RuleType     RuleType
	RulePriority int
}

// Key returns the deduplication key for a reason.
func (r Reason) Key() ReasonKey {
	return ReasonKey{RuleType: r.RuleType, RulePriority: r.RulePriority}
}

// CohortGroupResult is the per-cohort outcome of rule processing. CohortCode
// is the cohort's display group, not its membership label.
type CohortGroupResult struct {
	CohortCode  string   `json:"cohort_code"`
	Status      Status   `json:"status"`
	Reasons     []Reason `json:"reasons,omitempty"`
	Description string   `json:"description,omitempty"`

	// AuditRules holds the reasons that actually drove the decision. They
	// are reported through the audit record rather than the API response.
	AuditRules []Reason `json:"-"`
}

// IterationResult is one campaign's contribution to a condition decision:
// the current iteration's best cohort results and their shared status.
type IterationResult struct {
	CampaignID       string
	CampaignVersion  int
	IterationID      string
	IterationVersion int

	Status        Status
	CohortResults []CohortGroupResult

	// Iteration is retained so action resolution and display mapping can
	// consult the winning iteration's configuration.
	Iteration *Iteration
}

// BestIterationResult pairs a condition name with its winning campaign's
// iteration result.
type BestIterationResult struct {
	ConditionName string
	Result        IterationResult
}

// MatchedActionRule records which action-selection rule overrode the default
// comms routing, for the audit trail.
type MatchedActionRule struct {
	RuleName     string `json:"rule_name"`
	RulePriority int    `json:"rule_priority"`
}

// Condition is the final per-condition decision returned to callers.
type Condition struct {
	ConditionName      string              `json:"condition_name"`
	Status             Status              `json:"status"`
	StatusText         string              `json:"status_text"`
	CohortResults      []CohortGroupResult `json:"cohort_results"`
	SuitabilityResults []Reason            `json:"suitability_results,omitempty"`
	Actions            []ActionDetail      `json:"actions,omitempty"`

	// Decision provenance, carried for the audit record only.
	CampaignID       string             `json:"-"`
	CampaignVersion  int                `json:"-"`
	IterationID      string             `json:"-"`
	IterationVersion int                `json:"-"`
	ActionRule       *MatchedActionRule `json:"-"`
}

// EligibilityStatus is the engine's final output: an ordered list of
// per-condition decisions.
type EligibilityStatus struct {
	Conditions []Condition `json:"conditions"`
}
