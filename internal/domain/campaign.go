package domain

import (
	"fmt"
	"time"
)

// CampaignType distinguishes vaccination campaigns from screening campaigns.
// Wire values are single letters for compatibility with stored configs.
type CampaignType string

const (
	CampaignTypeVaccination CampaignType = "V"
	CampaignTypeScreening   CampaignType = "S"
)

// CampaignConfig is a named, versioned rule configuration targeting one
// condition, active over a date range. Configs are immutable once loaded.
type CampaignConfig struct {
	ID         string       `json:"ID"`
	Version    int          `json:"Version"`
	Name       string       `json:"Name"`
	Type       CampaignType `json:"Type"`
	Target     string       `json:"Target"`
	StartDate  Date         `json:"StartDate"`
	EndDate    Date         `json:"EndDate"`
	Iterations []Iteration  `json:"Iterations"`
}

// Live reports whether the campaign is active on the given day (start and
// end dates are inclusive).
func (c *CampaignConfig) Live(today time.Time) bool {
	return c.StartDate.OnOrBefore(today) && c.EndDate.OnOrAfter(today)
}

// CurrentIteration returns the most recent iteration whose date is on or
// before today, or ErrNoActiveIteration when every iteration is in the
// future.
func (c *CampaignConfig) CurrentIteration(today time.Time) (*Iteration, error) {
	var current *Iteration
	for i := range c.Iterations {
		it := &c.Iterations[i]
		if !it.IterationDate.OnOrBefore(today) {
			continue
		}
		if current == nil || it.IterationDate.After(current.IterationDate.Time) {
			current = it
		}
	}
	if current == nil {
		return nil, fmt.Errorf("campaign %s: %w", c.ID, ErrNoActiveIteration)
	}
	return current, nil
}

// Validate checks the structural invariants of a loaded campaign config:
// at least one iteration, start date not after end date, and iteration dates
// unique within the campaign.
func (c *CampaignConfig) Validate() error {
	if c.ID == "" {
		return NewConfigurationError("campaign has no ID")
	}
	if len(c.Iterations) == 0 {
		return NewConfigurationError("campaign %s has no iterations", c.ID)
	}
	if c.StartDate.After(c.EndDate.Time) {
		return NewConfigurationError("campaign %s: start date %s after end date %s",
			c.ID, c.StartDate.Format(DateLayout), c.EndDate.Format(DateLayout))
	}
	seen := make(map[string]bool, len(c.Iterations))
	for i := range c.Iterations {
		key := c.Iterations[i].IterationDate.Format(DateLayout)
		if seen[key] {
			return NewConfigurationError("campaign %s: duplicate iteration date %s", c.ID, key)
		}
		seen[key] = true
	}
	return nil
}

// Iteration is a dated edition of a campaign's rules.
type Iteration struct {
	ID      string `json:"ID"`
	Version int    `json:"Version"`
	Name    string `json:"Name"`
	Type    string `json:"Type,omitempty"`

	IterationDate Date `json:"IterationDate"`

	// Default comms-routing code lists (comma-separated ActionsMapper keys)
	// for each of the three decision outcomes.
	DefaultCommsRouting         string `json:"DefaultCommsRouting,omitempty"`
	DefaultNotEligibleRouting   string `json:"DefaultNotEligibleRouting,omitempty"`
	DefaultNotActionableRouting string `json:"DefaultNotActionableRouting,omitempty"`

	IterationCohorts []IterationCohort `json:"IterationCohorts"`
	IterationRules   []IterationRule   `json:"IterationRules"`

	ActionsMapper ActionsMapper     `json:"ActionsMapper,omitempty"`
	RulesMapper   RulesMapper       `json:"RulesMapper,omitempty"`
	StatusText    map[string]string `json:"StatusText,omitempty"`
}

// IterationCohort is a named sub-population within an iteration.
type IterationCohort struct {
	// CohortLabel is the membership key, unique within the iteration.
	CohortLabel string `json:"CohortLabel"`
	// CohortGroup is the display bucket reported as cohort_code in results.
	CohortGroup string `json:"CohortGroup"`
	// Priority breaks ties when selecting which description to keep.
	Priority int `json:"Priority"`

	PositiveDescription string `json:"PositiveDescription,omitempty"`
	NegativeDescription string `json:"NegativeDescription,omitempty"`

	// Virtual cohorts match every patient regardless of cohort membership.
	Virtual YesNo `json:"Virtual,omitempty"`
}

// ActionsMapper maps a comms-routing code to the communication actions it
// stands for. Lookups of unknown codes are silently dropped so a config with
// a stale routing entry degrades to fewer actions rather than failing.
type ActionsMapper map[string][]ActionDetail

// Resolve returns the actions for a single comms code, or nil when unmapped.
func (m ActionsMapper) Resolve(code string) []ActionDetail {
	if m == nil {
		return nil
	}
	return m[code]
}

// ActionDetail is one communication action presented to the caller.
type ActionDetail struct {
	ActionType          string `json:"ActionType"`
	ExternalRoutingCode string `json:"ExternalRoutingCode,omitempty"`
	ActionDescription   string `json:"ActionDescription,omitempty"`
	URLLink             string `json:"UrlLink,omitempty"`
	URLLabel            string `json:"UrlLabel,omitempty"`
}

// RulesMapper maps a rule name to the display code and text shown to users
// in place of the rule's raw code/description.
type RulesMapper map[string]RuleDisplay

// RuleDisplay is the user-facing rendering of a rule.
type RuleDisplay struct {
	RuleCode string `json:"RuleCode,omitempty"`
	RuleText string `json:"RuleText,omitempty"`
}

// DefaultRoutingFor returns the iteration's default comms-routing code list
// for the given decision outcome.
func (it *Iteration) DefaultRoutingFor(s Status) string {
	switch s {
	case StatusNotEligible:
		return it.DefaultNotEligibleRouting
	case StatusNotActionable:
		return it.DefaultNotActionableRouting
	default:
		return it.DefaultCommsRouting
	}
}

// StatusTextFor returns the display text for a status, honoring the
// iteration's StatusText overrides.
func (it *Iteration) StatusTextFor(s Status) string {
	if it.StatusText != nil {
		if text, ok := it.StatusText[s.String()]; ok && text != "" {
			return text
		}
	}
	return s.DefaultText()
}

// ResolveRuleDisplay resolves the display code and text for a rule within
// its owning iteration. The rules mapper wins when it has an entry for the
// rule's name; otherwise the rule's own code and description are used.
func ResolveRuleDisplay(it *Iteration, r *IterationRule) (code, text string) {
	if it != nil && it.RulesMapper != nil {
		if d, ok := it.RulesMapper[r.Name]; ok {
			code, text = d.RuleCode, d.RuleText
		}
	}
	if code == "" {
		code = r.Code
	}
	if text == "" {
		text = r.Description
	}
	return code, text
}
