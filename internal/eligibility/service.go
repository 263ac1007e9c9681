package eligibility

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ignite/eligibility-signpost/internal/audit"
	"github.com/ignite/eligibility-signpost/internal/domain"
)

// CampaignSource supplies the stored campaign configurations.
type CampaignSource interface {
	Campaigns(ctx context.Context) ([]domain.CampaignConfig, error)
}

// PersonRepository supplies a person's eligibility data records. It returns
// ErrPersonNotFound when the NHS number has no records at all.
type PersonRepository interface {
	Person(ctx context.Context, nhsNumber string) (domain.PersonRecord, error)
}

// Query narrows an eligibility check.
type Query struct {
	// Conditions restricts the check to the named conditions. Empty means all.
	Conditions []string
	Category   Category
	// IncludeActions controls whether communication actions are resolved.
	IncludeActions bool
}

// Service runs eligibility checks end to end.
type Service struct {
	campaigns CampaignSource
	persons   PersonRepository
	calc      *Calculator
	sink      audit.Sink
	logger    zerolog.Logger

	// now is injectable for tests.
	now func() time.Time
}

func NewService(campaigns CampaignSource, persons PersonRepository, calc *Calculator, sink audit.Sink, logger zerolog.Logger) *Service {
	return &Service{
		campaigns: campaigns,
		persons:   persons,
		calc:      calc,
		sink:      sink,
		logger:    logger,
		now:       time.Now,
	}
}

// CheckEligibility evaluates every requested condition for one person and
// writes an audit record for the decision. Audit failures are logged, not
// returned: the decision itself is still valid.
func (s *Service) CheckEligibility(ctx context.Context, nhsNumber string, q Query) (domain.EligibilityStatus, error) {
	person, err := s.persons.Person(ctx, nhsNumber)
	if err != nil {
		return domain.EligibilityStatus{}, fmt.Errorf("loading person: %w", err)
	}

	configs, err := s.campaigns.Campaigns(ctx)
	if err != nil {
		return domain.EligibilityStatus{}, fmt.Errorf("loading campaign configs: %w", err)
	}

	today := s.now()
	groups := GroupCampaigns(configs, q.Category, q.Conditions, today)
	status, err := s.calc.EvaluateConditions(person, groups, q.IncludeActions, today)
	if err != nil {
		return domain.EligibilityStatus{}, err
	}

	if s.sink != nil {
		rec := audit.BuildRecord(nhsNumber, string(q.Category), q.Conditions, q.IncludeActions, status, today)
		if err := s.sink.Write(ctx, rec); err != nil {
			s.logger.Error().Err(err).Str("audit_id", rec.AuditID).Msg("failed to write audit record")
		}
	}
	return status, nil
}
