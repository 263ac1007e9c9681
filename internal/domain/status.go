package domain

import (
	"encoding/json"
	"fmt"
)

// Status is the three-valued outcome of evaluating a cohort, iteration, or
// condition. The values are totally ordered: NotEligible < NotActionable <
// Actionable. "Worst" means the minimum of two statuses, "best" the maximum.
type Status int

const (
	// StatusNotEligible means the patient does not qualify at all.
	StatusNotEligible Status = iota
	// StatusNotActionable means the patient qualifies but cannot act right now
	// (temporarily suppressed).
	StatusNotActionable
	// StatusActionable means the patient qualifies and should act.
	StatusActionable
)

var statusNames = map[Status]string{
	StatusNotEligible:   "NotEligible",
	StatusNotActionable: "NotActionable",
	StatusActionable:    "Actionable",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Worst returns the lower of the two statuses.
func (s Status) Worst(other Status) Status {
	if other < s {
		return other
	}
	return s
}

// Best returns the higher of the two statuses.
func (s Status) Best(other Status) Status {
	if other > s {
		return other
	}
	return s
}

// DefaultText returns the built-in display text for a status. Iterations may
// override this via their StatusText map.
func (s Status) DefaultText() string {
	switch s {
	case StatusNotEligible:
		return "We do not believe you can have it"
	case StatusNotActionable:
		return "You should have it, but you cannot have it right now"
	default:
		return "You should have it"
	}
}

// ActionRuleType returns the iteration-rule type consulted when resolving
// communication actions for a decision with this status.
func (s Status) ActionRuleType() RuleType {
	switch s {
	case StatusNotEligible:
		return RuleTypeNotEligibleAction
	case StatusNotActionable:
		return RuleTypeNotActionableAction
	default:
		return RuleTypeRedirect
	}
}

// MarshalJSON serializes the status as its display name.
func (s Status) MarshalJSON() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return json.Marshal(name)
}

// UnmarshalJSON parses a status display name.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for v, n := range statusNames {
		if n == name {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", name)
}
