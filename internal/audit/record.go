package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

// Record is the persisted trail for one eligibility check.
type Record struct {
	AuditID   string    `json:"audit_id" dynamodbav:"AuditID"`
	Timestamp time.Time `json:"timestamp" dynamodbav:"Timestamp"`
	NHSNumber string    `json:"nhs_number" dynamodbav:"NHSNumber"`

	Category       string   `json:"category" dynamodbav:"Category"`
	Conditions     []string `json:"conditions,omitempty" dynamodbav:"Conditions,omitempty"`
	IncludeActions bool     `json:"include_actions" dynamodbav:"IncludeActions"`

	Results []ConditionTrace `json:"results" dynamodbav:"Results"`
}

// ConditionTrace records the provenance of one condition's decision.
type ConditionTrace struct {
	ConditionName    string `json:"condition_name" dynamodbav:"ConditionName"`
	CampaignID       string `json:"campaign_id" dynamodbav:"CampaignID"`
	CampaignVersion  int    `json:"campaign_version" dynamodbav:"CampaignVersion"`
	IterationID      string `json:"iteration_id" dynamodbav:"IterationID"`
	IterationVersion int    `json:"iteration_version" dynamodbav:"IterationVersion"`

	Status     domain.Status             `json:"status" dynamodbav:"Status"`
	ActionRule *domain.MatchedActionRule `json:"action_rule,omitempty" dynamodbav:"ActionRule,omitempty"`

	Cohorts []CohortTrace `json:"cohorts" dynamodbav:"Cohorts"`
}

// CohortTrace records the rules that drove one cohort group's status.
type CohortTrace struct {
	CohortCode string          `json:"cohort_code" dynamodbav:"CohortCode"`
	Status     domain.Status   `json:"status" dynamodbav:"Status"`
	Rules      []domain.Reason `json:"rules,omitempty" dynamodbav:"Rules,omitempty"`
}

// Sink persists audit records.
type Sink interface {
	Write(ctx context.Context, rec Record) error
}

// BuildRecord assembles the audit record for a completed check.
func BuildRecord(nhsNumber, category string, conditions []string, includeActions bool, status domain.EligibilityStatus, now time.Time) Record {
	rec := Record{
		AuditID:        uuid.NewString(),
		Timestamp:      now.UTC(),
		NHSNumber:      nhsNumber,
		Category:       category,
		Conditions:     conditions,
		IncludeActions: includeActions,
	}
	for _, cond := range status.Conditions {
		trace := ConditionTrace{
			ConditionName:    cond.ConditionName,
			CampaignID:       cond.CampaignID,
			CampaignVersion:  cond.CampaignVersion,
			IterationID:      cond.IterationID,
			IterationVersion: cond.IterationVersion,
			Status:           cond.Status,
			ActionRule:       cond.ActionRule,
		}
		for _, cr := range cond.CohortResults {
			trace.Cohorts = append(trace.Cohorts, CohortTrace{
				CohortCode: cr.CohortCode,
				Status:     cr.Status,
				Rules:      cr.AuditRules,
			})
		}
		rec.Results = append(rec.Results, trace)
	}
	return rec
}
