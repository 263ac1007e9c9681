package rules

import (
	"strings"
	"time"

	"github.com/ignite/eligibility-signpost/internal/domain"
	"github.com/ignite/eligibility-signpost/internal/operators"
)

// Calculator evaluates one iteration rule against one patient record. It is
// stateless apart from the shared operator registry and safe for concurrent
// use.
type Calculator struct {
	registry *operators.Registry
}

// NewCalculator builds a Calculator over the given operator registry.
func NewCalculator(registry *operators.Registry) *Calculator {
	return &Calculator{registry: registry}
}

// EvaluateExclusion evaluates a rule and returns the status the patient
// moves to together with the reason. A non-matching rule never excludes:
// the returned status is Actionable and the reason carries Matched=false.
// Unknown attribute levels and operators are configuration errors.
func (c *Calculator) EvaluateExclusion(person domain.PersonRecord, it *domain.Iteration, rule *domain.IterationRule, today time.Time) (domain.Status, domain.Reason, error) {
	value, err := c.resolveAttribute(person, rule)
	if err != nil {
		return domain.StatusActionable, domain.Reason{}, err
	}

	predicate, err := c.registry.Predicate(rule.Operator, rule.Comparator, today)
	if err != nil {
		return domain.StatusActionable, domain.Reason{}, err
	}

	matched := predicate.Matches(value)
	reason := buildReason(it, rule, matched)
	if !matched {
		return domain.StatusActionable, reason, nil
	}
	return rule.Type.ExclusionStatus(), reason, nil
}

// resolveAttribute finds the value a rule compares against, according to the
// rule's attribute level.
func (c *Calculator) resolveAttribute(person domain.PersonRecord, rule *domain.IterationRule) (operators.Value, error) {
	switch rule.AttributeLevel {
	case domain.AttributeLevelPerson:
		return lookupValue(person, domain.AttributeRecordPerson, rule.AttributeName), nil

	case domain.AttributeLevelTarget:
		return lookupValue(person, rule.AttributeTarget, rule.AttributeName), nil

	case domain.AttributeLevelCohort:
		memberships := person.CohortMemberships()
		if len(memberships) == 0 {
			return operators.Missing(), nil
		}
		return operators.Of(strings.Join(memberships, ",")), nil

	default:
		return operators.Value{}, domain.NewConfigurationError(
			"rule %q: unknown attribute level %q", rule.Name, rule.AttributeLevel)
	}
}

func lookupValue(person domain.PersonRecord, recordType, attributeName string) operators.Value {
	attrs, ok := person.Lookup(recordType)
	if !ok {
		return operators.Missing()
	}
	raw, ok := attrs.Get(attributeName)
	if !ok {
		return operators.Missing()
	}
	return operators.Of(raw)
}

func buildReason(it *domain.Iteration, rule *domain.IterationRule, matched bool) domain.Reason {
	code, text := domain.ResolveRuleDisplay(it, rule)
	return domain.Reason{
		RuleType:     rule.Type,
		RuleName:     rule.Name,
		RuleCode:     code,
		RulePriority: rule.Priority,
		RuleText:     text,
		Matched:      matched,
	}
}
