package eligibility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/eligibility-signpost/internal/audit"
	"github.com/ignite/eligibility-signpost/internal/domain"
)

type stubCampaignSource struct {
	configs []domain.CampaignConfig
	err     error
}

func (s *stubCampaignSource) Campaigns(context.Context) ([]domain.CampaignConfig, error) {
	return s.configs, s.err
}

type stubPersonRepository struct {
	person domain.PersonRecord
	err    error
}

func (s *stubPersonRepository) Person(context.Context, string) (domain.PersonRecord, error) {
	return s.person, s.err
}

type captureSink struct {
	records []audit.Record
	err     error
}

func (s *captureSink) Write(_ context.Context, rec audit.Record) error {
	s.records = append(s.records, rec)
	return s.err
}

func newTestService(campaigns *stubCampaignSource, persons *stubPersonRepository, sink audit.Sink) *Service {
	svc := NewService(campaigns, persons, newCalculator(), sink, zerolog.Nop())
	svc.now = func() time.Time { return testToday }
	return svc
}

func TestCheckEligibility(t *testing.T) {
	cfg := rsvCampaign("rsv-2025", rsvIteration([]domain.IterationCohort{memberCohort()}, nil))
	sink := &captureSink{}
	svc := newTestService(
		&stubCampaignSource{configs: []domain.CampaignConfig{cfg}},
		&stubPersonRepository{person: rsvPerson()},
		sink,
	)

	status, err := svc.CheckEligibility(context.Background(), "5000000001", Query{Category: CategoryAll})
	require.NoError(t, err)
	require.Len(t, status.Conditions, 1)
	assert.Equal(t, domain.StatusActionable, status.Conditions[0].Status)

	require.Len(t, sink.records, 1)
	assert.Equal(t, "5000000001", sink.records[0].NHSNumber)
	require.Len(t, sink.records[0].Results, 1)
	assert.Equal(t, "rsv-2025", sink.records[0].Results[0].CampaignID)
}

func TestCheckEligibility_PersonNotFound(t *testing.T) {
	svc := newTestService(
		&stubCampaignSource{},
		&stubPersonRepository{err: ErrPersonNotFound},
		&captureSink{},
	)

	_, err := svc.CheckEligibility(context.Background(), "9999999999", Query{Category: CategoryAll})
	assert.ErrorIs(t, err, ErrPersonNotFound)
}

func TestCheckEligibility_CampaignSourceFailure(t *testing.T) {
	boom := errors.New("s3 unavailable")
	svc := newTestService(
		&stubCampaignSource{err: boom},
		&stubPersonRepository{person: rsvPerson()},
		&captureSink{},
	)

	_, err := svc.CheckEligibility(context.Background(), "5000000001", Query{Category: CategoryAll})
	assert.ErrorIs(t, err, boom)
}

func TestCheckEligibility_AuditFailureIsNotFatal(t *testing.T) {
	cfg := rsvCampaign("rsv-2025", rsvIteration([]domain.IterationCohort{memberCohort()}, nil))
	svc := newTestService(
		&stubCampaignSource{configs: []domain.CampaignConfig{cfg}},
		&stubPersonRepository{person: rsvPerson()},
		&captureSink{err: errors.New("dynamodb throttled")},
	)

	status, err := svc.CheckEligibility(context.Background(), "5000000001", Query{Category: CategoryAll})
	require.NoError(t, err)
	assert.Len(t, status.Conditions, 1)
}

func TestCheckEligibility_NilSink(t *testing.T) {
	cfg := rsvCampaign("rsv-2025", rsvIteration([]domain.IterationCohort{memberCohort()}, nil))
	svc := newTestService(
		&stubCampaignSource{configs: []domain.CampaignConfig{cfg}},
		&stubPersonRepository{person: rsvPerson()},
		nil,
	)

	_, err := svc.CheckEligibility(context.Background(), "5000000001", Query{Category: CategoryAll})
	require.NoError(t, err)
}
