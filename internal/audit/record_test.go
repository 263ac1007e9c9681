package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

func TestBuildRecord(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	status := domain.EligibilityStatus{
		Conditions: []domain.Condition{{
			ConditionName:    "RSV",
			Status:           domain.StatusNotActionable,
			CampaignID:       "rsv-2025",
			CampaignVersion:  3,
			IterationID:      "it-2",
			IterationVersion: 1,
			ActionRule:       &domain.MatchedActionRule{RuleName: "InCatchment", RulePriority: 10},
			CohortResults: []domain.CohortGroupResult{{
				CohortCode: "rsv_age_rolling",
				Status:     domain.StatusNotActionable,
				AuditRules: []domain.Reason{{
					RuleType: domain.RuleTypeSuppression, RuleName: "AlreadyVaccinated", RulePriority: 10, Matched: true,
				}},
			}},
		}},
	}

	rec := BuildRecord("5000000001", "VACCINATIONS", []string{"RSV"}, true, status, now)

	assert.NotEmpty(t, rec.AuditID)
	assert.Equal(t, now, rec.Timestamp)
	assert.Equal(t, "5000000001", rec.NHSNumber)
	assert.Equal(t, "VACCINATIONS", rec.Category)
	assert.True(t, rec.IncludeActions)

	require.Len(t, rec.Results, 1)
	trace := rec.Results[0]
	assert.Equal(t, "rsv-2025", trace.CampaignID)
	assert.Equal(t, 3, trace.CampaignVersion)
	assert.Equal(t, "it-2", trace.IterationID)
	assert.Equal(t, domain.StatusNotActionable, trace.Status)
	require.NotNil(t, trace.ActionRule)
	assert.Equal(t, "InCatchment", trace.ActionRule.RuleName)

	require.Len(t, trace.Cohorts, 1)
	assert.Equal(t, "rsv_age_rolling", trace.Cohorts[0].CohortCode)
	require.Len(t, trace.Cohorts[0].Rules, 1)
	assert.Equal(t, "AlreadyVaccinated", trace.Cohorts[0].Rules[0].RuleName)
}

func TestBuildRecord_UniqueIDs(t *testing.T) {
	now := time.Now()
	a := BuildRecord("1", "ALL", nil, false, domain.EligibilityStatus{}, now)
	b := BuildRecord("1", "ALL", nil, false, domain.EligibilityStatus{}, now)
	assert.NotEqual(t, a.AuditID, b.AuditID)
}
