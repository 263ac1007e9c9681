package eligibility

import (
	"sort"
	"strings"
	"time"

	"github.com/ignite/eligibility-signpost/internal/domain"
	"github.com/ignite/eligibility-signpost/internal/rules"
)

// ActionHandler resolves the communication actions for a decided condition.
type ActionHandler struct {
	calc *rules.Calculator
}

func NewActionHandler(calc *rules.Calculator) *ActionHandler {
	return &ActionHandler{calc: calc}
}

// Resolve returns the actions for a condition outcome. The iteration's
// default routing for the status applies unless an action-selection rule
// group fully matches the person; the first such group (by ascending
// priority) whose routing resolves to at least one action overrides the
// default. Routing codes missing from the ActionsMapper are dropped.
func (h *ActionHandler) Resolve(person domain.PersonRecord, it *domain.Iteration, status domain.Status, today time.Time) ([]domain.ActionDetail, *domain.MatchedActionRule, error) {
	actions := resolveRouting(it, it.DefaultRoutingFor(status))

	for _, group := range actionGroups(it, status.ActionRuleType()) {
		matched, err := h.groupMatches(person, it, group, today)
		if err != nil {
			return nil, nil, err
		}
		if !matched {
			continue
		}
		override := resolveRouting(it, groupRouting(group))
		if len(override) > 0 {
			actions = override
			rule := group[0]
			return actions, &domain.MatchedActionRule{RuleName: rule.Name, RulePriority: rule.Priority}, nil
		}
		break
	}
	return actions, nil, nil
}

func (h *ActionHandler) groupMatches(person domain.PersonRecord, it *domain.Iteration, group []*domain.IterationRule, today time.Time) (bool, error) {
	for _, rule := range group {
		_, reason, err := h.calc.EvaluateExclusion(person, it, rule, today)
		if err != nil {
			return false, err
		}
		if !reason.Matched {
			return false, nil
		}
	}
	return true, nil
}

// resolveRouting expands a comma-separated routing code list through the
// iteration's ActionsMapper. Unmapped codes contribute nothing.
func resolveRouting(it *domain.Iteration, routing string) []domain.ActionDetail {
	var out []domain.ActionDetail
	for _, code := range strings.Split(routing, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		out = append(out, it.ActionsMapper.Resolve(code)...)
	}
	return out
}

// groupRouting joins the routing overrides carried by a rule group.
func groupRouting(group []*domain.IterationRule) string {
	var codes []string
	for _, rule := range group {
		if rule.CommsRouting != "" {
			codes = append(codes, rule.CommsRouting)
		}
	}
	return strings.Join(codes, ",")
}

// actionGroups returns the iteration's action-selection rules of the given
// type, bucketed by priority in ascending order.
func actionGroups(it *domain.Iteration, ruleType domain.RuleType) [][]*domain.IterationRule {
	var candidates []*domain.IterationRule
	for i := range it.IterationRules {
		if it.IterationRules[i].Type == ruleType {
			candidates = append(candidates, &it.IterationRules[i])
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	})
	var groups [][]*domain.IterationRule
	for _, rule := range candidates {
		if n := len(groups); n > 0 && groups[n-1][0].Priority == rule.Priority {
			groups[n-1] = append(groups[n-1], rule)
			continue
		}
		groups = append(groups, []*domain.IterationRule{rule})
	}
	return groups
}
