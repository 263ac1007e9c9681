package eligibility

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ignite/eligibility-signpost/internal/domain"
	"github.com/ignite/eligibility-signpost/internal/rules"
	"github.com/ignite/eligibility-signpost/internal/tokens"
)

// Calculator turns grouped campaigns and a person's records into final
// per-condition decisions.
type Calculator struct {
	processor *rules.Processor
	actions   *ActionHandler
	tokens    *tokens.Processor
	logger    zerolog.Logger
}

func NewCalculator(processor *rules.Processor, actions *ActionHandler, tok *tokens.Processor, logger zerolog.Logger) *Calculator {
	return &Calculator{processor: processor, actions: actions, tokens: tok, logger: logger}
}

// EvaluateConditions runs every campaign group and assembles the response.
// Campaigns without an active iteration are skipped; a condition whose
// campaigns were all skipped is omitted from the output.
func (c *Calculator) EvaluateConditions(person domain.PersonRecord, groups []ConditionCampaigns, includeActions bool, today time.Time) (domain.EligibilityStatus, error) {
	var status domain.EligibilityStatus
	for _, group := range groups {
		cond, ok, err := c.evaluateCondition(person, group, includeActions, today)
		if err != nil {
			return domain.EligibilityStatus{}, err
		}
		if ok {
			status.Conditions = append(status.Conditions, cond)
		}
	}
	return status, nil
}

func (c *Calculator) evaluateCondition(person domain.PersonRecord, group ConditionCampaigns, includeActions bool, today time.Time) (domain.Condition, bool, error) {
	var best *domain.IterationResult
	for _, cfg := range group.Campaigns {
		result, ok, err := c.evaluateCampaign(person, cfg, today)
		if err != nil {
			return domain.Condition{}, false, err
		}
		if !ok {
			continue
		}
		// Ties go to the campaign supplied first.
		if best == nil || result.Status > best.Status {
			best = &result
		}
	}
	if best == nil {
		return domain.Condition{}, false, nil
	}

	cohorts := dedupeCohorts(best.CohortResults)
	cond := domain.Condition{
		ConditionName:      group.ConditionName,
		Status:             best.Status,
		StatusText:         best.Iteration.StatusTextFor(best.Status),
		CohortResults:      cohorts,
		SuitabilityResults: suitabilityReasons(best.Status, cohorts),

		CampaignID:       best.CampaignID,
		CampaignVersion:  best.CampaignVersion,
		IterationID:      best.IterationID,
		IterationVersion: best.IterationVersion,
	}

	if includeActions {
		actions, matched, err := c.actions.Resolve(person, best.Iteration, best.Status, today)
		if err != nil {
			return domain.Condition{}, false, err
		}
		cond.Actions = actions
		cond.ActionRule = matched
	}

	if err := c.tokens.SubstituteCondition(&cond, person); err != nil {
		return domain.Condition{}, false, err
	}
	return cond, true, nil
}

// evaluateCampaign runs the campaign's current iteration and keeps the cohort
// results sharing the iteration's best status.
func (c *Calculator) evaluateCampaign(person domain.PersonRecord, cfg *domain.CampaignConfig, today time.Time) (domain.IterationResult, bool, error) {
	it, err := cfg.CurrentIteration(today)
	if err != nil {
		c.logger.Debug().Str("campaign_id", cfg.ID).Msg("no active iteration, skipping campaign")
		return domain.IterationResult{}, false, nil
	}
	if len(it.IterationCohorts) == 0 {
		c.logger.Warn().Str("campaign_id", cfg.ID).Str("iteration_id", it.ID).Msg("iteration has no cohorts, skipping campaign")
		return domain.IterationResult{}, false, nil
	}

	results := make([]domain.CohortGroupResult, 0, len(it.IterationCohorts))
	status := domain.StatusNotEligible
	for i := range it.IterationCohorts {
		cr, err := c.processor.ProcessCohort(person, it, &it.IterationCohorts[i], today)
		if err != nil {
			return domain.IterationResult{}, false, err
		}
		cr.Description = strings.TrimSpace(cr.Description)
		results = append(results, cr)
		status = status.Best(cr.Status)
	}

	kept := results[:0]
	for _, cr := range results {
		if cr.Status == status {
			kept = append(kept, cr)
		}
	}

	return domain.IterationResult{
		CampaignID:       cfg.ID,
		CampaignVersion:  cfg.Version,
		IterationID:      it.ID,
		IterationVersion: it.Version,
		Status:           status,
		CohortResults:    kept,
		Iteration:        it,
	}, true, nil
}

// dedupeCohorts merges cohort results sharing a cohort code. The first
// occurrence keeps its position; reasons are unioned by (rule type, rule
// priority) with the first-seen reason winning, and the first non-empty
// description is kept.
func dedupeCohorts(results []domain.CohortGroupResult) []domain.CohortGroupResult {
	var out []domain.CohortGroupResult
	index := make(map[string]int)
	for _, cr := range results {
		at, ok := index[cr.CohortCode]
		if !ok {
			index[cr.CohortCode] = len(out)
			out = append(out, cr)
			continue
		}
		merged := &out[at]
		merged.Reasons = mergeReasons(merged.Reasons, cr.Reasons)
		merged.AuditRules = mergeReasons(merged.AuditRules, cr.AuditRules)
		if merged.Description == "" {
			merged.Description = cr.Description
		}
	}
	return out
}

func mergeReasons(into, from []domain.Reason) []domain.Reason {
	seen := make(map[domain.ReasonKey]bool, len(into))
	for _, r := range into {
		seen[r.Key()] = true
	}
	for _, r := range from {
		if !seen[r.Key()] {
			seen[r.Key()] = true
			into = append(into, r)
		}
	}
	return into
}

// suitabilityReasons collects the matched suppression reasons shown to the
// caller when the person is eligible but cannot act yet.
func suitabilityReasons(status domain.Status, cohorts []domain.CohortGroupResult) []domain.Reason {
	if status != domain.StatusNotActionable {
		return nil
	}
	var out []domain.Reason
	seen := make(map[domain.ReasonKey]bool)
	for _, cr := range cohorts {
		for _, r := range cr.Reasons {
			if r.Matched && !seen[r.Key()] {
				seen[r.Key()] = true
				out = append(out, r)
			}
		}
	}
	return out
}
