package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

func testPerson() domain.PersonRecord {
	return domain.NewPersonRecord("5000000001", map[string]domain.Attributes{
		domain.AttributeRecordPerson: {
			"DATE_OF_BIRTH": "19580415",
			"POSTCODE":      "SW1A 1AA",
		},
		domain.AttributeRecordCohorts: {
			domain.CohortMembershipsKey: "rsv_age_rolling, covid_core",
		},
		"COVID": {
			"LAST_SUCCESSFUL_DATE": "20260128",
			"LAST_INVITE_STATUS":   "SENT",
		},
		"RSV": {},
	})
}

func TestSubstitute_PersonAttributes(t *testing.T) {
	p := NewProcessor()
	person := testPerson()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain attribute", "Your postcode is [[PERSON.POSTCODE]].", "Your postcode is SW1A 1AA."},
		{"known but absent attribute", "[[PERSON.GENDER]]", ""},
		{"date formatting", "Born [[PERSON.DATE_OF_BIRTH:DATE(%d %B %Y)]]", "Born 15 April 1958"},
		{"no tokens", "Nothing to do here", "Nothing to do here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Substitute(tt.in, person)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstitute_TargetFields(t *testing.T) {
	p := NewProcessor()
	person := testPerson()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain field", "[[TARGET.COVID.LAST_INVITE_STATUS]]", "SENT"},
		{"known field missing from record", "[[TARGET.COVID.BOOKED_APPOINTMENT_DATE]]", ""},
		{"whole record missing", "[[TARGET.FLU.LAST_SUCCESSFUL_DATE]]", ""},
		{"derived add days", "[[TARGET.COVID.NEXT_DOSE_DUE:ADD_DAYS(91)]]", "20260429"},
		{"derived add days formatted", "Due [[TARGET.COVID.NEXT_DOSE_DUE:ADD_DAYS(91):DATE(%d %B %Y)]]", "Due 29 April 2026"},
		{"derived with empty source", "[[TARGET.RSV.NEXT_DOSE_DUE:ADD_DAYS(91)]]", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Substitute(tt.in, person)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstitute_CohortTokens(t *testing.T) {
	p := NewProcessor()
	person := testPerson()

	got, err := p.Substitute("[[COHORT]]", person)
	require.NoError(t, err)
	assert.Equal(t, "rsv_age_rolling,covid_core", got)

	got, err = p.Substitute("[[COHORT.COHORT_MEMBERSHIPS]]", person)
	require.NoError(t, err)
	assert.Equal(t, "rsv_age_rolling,covid_core", got)
}

func TestSubstitute_ConfigurationErrors(t *testing.T) {
	p := NewProcessor()
	person := testPerson()

	tests := []struct {
		name string
		in   string
	}{
		{"unknown level", "[[HOUSEHOLD.SIZE]]"},
		{"unknown person attribute", "[[PERSON.SHOE_SIZE]]"},
		{"unknown target field", "[[TARGET.COVID.FAVOURITE_COLOUR]]"},
		{"unknown function", "[[TARGET.COVID.NEXT_DOSE_DUE:SUBTRACT_DAYS(7)]]"},
		{"function on non-derivable field", "[[TARGET.COVID.LAST_INVITE_STATUS:ADD_DAYS(7)]]"},
		{"non-integer offset", "[[TARGET.COVID.NEXT_DOSE_DUE:ADD_DAYS(soon)]]"},
		{"person token with segments missing", "[[PERSON]]"},
		{"target token with field missing", "[[TARGET.COVID]]"},
		{"function without parentheses", "[[TARGET.COVID.NEXT_DOSE_DUE:ADD_DAYS]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Substitute(tt.in, person)
			require.Error(t, err)
			assert.True(t, domain.IsConfigurationError(err))
		})
	}
}

func TestSubstitute_ErrorLeavesNoPartialOutput(t *testing.T) {
	p := NewProcessor()
	got, err := p.Substitute("[[PERSON.POSTCODE]] and [[PERSON.SHOE_SIZE]]", testPerson())
	require.Error(t, err)
	assert.Empty(t, got)
}

func TestAddDays_AlternativeSource(t *testing.T) {
	p := NewProcessor()
	got, err := p.Substitute("[[TARGET.COVID.NEXT_DOSE_DUE:ADD_DAYS(7,LAST_INVITE_STATUS)]]", testPerson())
	require.NoError(t, err)
	// LAST_INVITE_STATUS holds "SENT", which is not a date.
	assert.Empty(t, got)
}

func TestSubstituteCondition(t *testing.T) {
	p := NewProcessor()
	person := testPerson()

	cond := &domain.Condition{
		ConditionName: "COVID",
		Status:        domain.StatusActionable,
		StatusText:    "Next dose from [[TARGET.COVID.NEXT_DOSE_DUE:ADD_DAYS(91):DATE(%d %B %Y)]]",
		CohortResults: []domain.CohortGroupResult{{
			CohortCode:  "covid_core",
			Description: "You live in [[PERSON.POSTCODE]]",
			Reasons: []domain.Reason{{
				RuleText: "Last vaccinated [[TARGET.COVID.LAST_SUCCESSFUL_DATE:DATE(%d/%m/%Y)]]",
			}},
		}},
		SuitabilityResults: []domain.Reason{{
			RuleText: "Wait until [[TARGET.COVID.NEXT_DOSE_DUE:ADD_DAYS(91):DATE(%d %B %Y)]]",
		}},
		Actions: []domain.ActionDetail{{
			ActionDescription: "Book after [[TARGET.COVID.NEXT_DOSE_DUE:ADD_DAYS(91)]]",
			URLLabel:          "Book now",
		}},
	}

	require.NoError(t, p.SubstituteCondition(cond, person))
	assert.Equal(t, "Next dose from 29 April 2026", cond.StatusText)
	assert.Equal(t, "You live in SW1A 1AA", cond.CohortResults[0].Description)
	assert.Equal(t, "Last vaccinated 28/01/2026", cond.CohortResults[0].Reasons[0].RuleText)
	assert.Equal(t, "Wait until 29 April 2026", cond.SuitabilityResults[0].RuleText)
	assert.Equal(t, "Book after 20260429", cond.Actions[0].ActionDescription)
	assert.Equal(t, "Book now", cond.Actions[0].URLLabel)
}
