package rules

import (
	"sort"
	"time"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

// Processor computes a cohort's eligibility result by running the fixed
// pipeline: base eligibility, filter rules, suppression rules. Each stage
// either settles the result or hands the accumulator to the next stage.
type Processor struct {
	calc *Calculator
}

// NewProcessor builds a Processor over the given rule calculator.
func NewProcessor(calc *Calculator) *Processor {
	return &Processor{calc: calc}
}

// ProcessCohort evaluates one iteration cohort for one patient.
func (p *Processor) ProcessCohort(person domain.PersonRecord, it *domain.Iteration, cohort *domain.IterationCohort, today time.Time) (domain.CohortGroupResult, error) {
	// Base eligibility: membership (or a virtual cohort) is the entry
	// ticket. Failing it settles the cohort without touching any rules.
	if !cohort.Virtual.Bool() && !person.HasCohort(cohort.CohortLabel) {
		return domain.CohortGroupResult{
			CohortCode:  cohort.CohortGroup,
			Status:      domain.StatusNotEligible,
			Description: cohort.NegativeDescription,
		}, nil
	}

	// Filter rules: the first excluding priority group settles the cohort
	// as NotEligible; lower-priority groups are never reached.
	filterGroups := groupByPriority(scopedRules(it, cohort.CohortLabel, domain.RuleTypeFilter))
	for _, group := range filterGroups {
		excluded, reasons, _, err := p.evaluateGroup(person, it, group, today)
		if err != nil {
			return domain.CohortGroupResult{}, err
		}
		if excluded {
			return domain.CohortGroupResult{
				CohortCode:  cohort.CohortGroup,
				Status:      domain.StatusNotEligible,
				Description: cohort.NegativeDescription,
				Reasons:     reasons,
				AuditRules:  reasons,
			}, nil
		}
	}

	// Suppression rules: excluding groups accumulate; evaluation continues
	// past a non-stopping excluding group and only a rule_stop halts it.
	// Reasons gathered so far are retained even when a later group does not
	// exclude.
	var accumulated []domain.Reason
	suppressed := false
	suppressionGroups := groupByPriority(scopedRules(it, cohort.CohortLabel, domain.RuleTypeSuppression))
	for _, group := range suppressionGroups {
		excluded, reasons, stop, err := p.evaluateGroup(person, it, group, today)
		if err != nil {
			return domain.CohortGroupResult{}, err
		}
		if !excluded {
			continue
		}
		suppressed = true
		accumulated = append(accumulated, reasons...)
		if stop {
			break
		}
	}

	status := domain.StatusActionable
	if suppressed {
		status = domain.StatusNotActionable
	}
	return domain.CohortGroupResult{
		CohortCode:  cohort.CohortGroup,
		Status:      status,
		Description: cohort.PositiveDescription,
		Reasons:     accumulated,
		AuditRules:  accumulated,
	}, nil
}

// evaluateGroup applies AND semantics within a priority group: the group
// excludes only when every rule in it individually matches. The returned
// stop flag reports whether any rule in an excluding group carries
// rule_stop.
func (p *Processor) evaluateGroup(person domain.PersonRecord, it *domain.Iteration, group []*domain.IterationRule, today time.Time) (excluded bool, reasons []domain.Reason, stop bool, err error) {
	for _, rule := range group {
		_, reason, err := p.calc.EvaluateExclusion(person, it, rule, today)
		if err != nil {
			return false, nil, false, err
		}
		if !reason.Matched {
			return false, nil, false, nil
		}
		reasons = append(reasons, reason)
		if rule.RuleStop.Bool() {
			stop = true
		}
	}
	if len(reasons) == 0 {
		return false, nil, false, nil
	}
	return true, reasons, stop, nil
}

// scopedRules returns the iteration's rules of one type that apply to the
// given cohort label, in configuration order.
func scopedRules(it *domain.Iteration, cohortLabel string, ruleType domain.RuleType) []*domain.IterationRule {
	var out []*domain.IterationRule
	for i := range it.IterationRules {
		rule := &it.IterationRules[i]
		if rule.Type == ruleType && rule.AppliesTo(cohortLabel) {
			out = append(out, rule)
		}
	}
	return out
}

// groupByPriority sorts rules by ascending priority and buckets rules that
// share a priority into one group. The sort is stable so rules within a
// group keep configuration order.
func groupByPriority(rules []*domain.IterationRule) [][]*domain.IterationRule {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})
	var groups [][]*domain.IterationRule
	for _, rule := range rules {
		n := len(groups)
		if n > 0 && groups[n-1][0].Priority == rule.Priority {
			groups[n-1] = append(groups[n-1], rule)
			continue
		}
		groups = append(groups, []*domain.IterationRule{rule})
	}
	return groups
}
