package storage

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

func marshalPersonItem(t *testing.T, row personItem) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(row)
	require.NoError(t, err)
	return item
}

func TestBuildPersonRecord(t *testing.T) {
	items := []map[string]types.AttributeValue{
		marshalPersonItem(t, personItem{
			PK:            "PERSON#5000000001",
			SK:            "PERSON",
			AttributeType: "PERSON",
			Attributes:    map[string]string{"DATE_OF_BIRTH": "19540215", "POSTCODE": "SW1A 1AA"},
		}),
		marshalPersonItem(t, personItem{
			PK:            "PERSON#5000000001",
			SK:            "COHORTS",
			AttributeType: "COHORTS",
			Attributes:    map[string]string{domain.CohortMembershipsKey: "rsv_age_range, covid_clinical"},
		}),
		marshalPersonItem(t, personItem{
			PK:            "PERSON#5000000001",
			SK:            "RSV",
			AttributeType: "RSV",
			Attributes:    map[string]string{"LAST_SUCCESSFUL_DATE": "20240601"},
		}),
	}

	person, err := buildPersonRecord("5000000001", items)
	require.NoError(t, err)

	assert.Equal(t, "5000000001", person.NHSNumber())

	demographics, ok := person.Lookup(domain.AttributeRecordPerson)
	require.True(t, ok)
	postcode, _ := demographics.Get("POSTCODE")
	assert.Equal(t, "SW1A 1AA", postcode)

	rsv, ok := person.Lookup("RSV")
	require.True(t, ok)
	lastDose, _ := rsv.Get("LAST_SUCCESSFUL_DATE")
	assert.Equal(t, "20240601", lastDose)

	assert.Equal(t, []string{"rsv_age_range", "covid_clinical"}, person.CohortMemberships())
}

func TestBuildPersonRecord_FallsBackToSortKey(t *testing.T) {
	items := []map[string]types.AttributeValue{
		marshalPersonItem(t, personItem{
			PK:         "PERSON#5000000002",
			SK:         "COVID",
			Attributes: map[string]string{"LAST_INVITE_STATUS": "SENT"},
		}),
	}

	person, err := buildPersonRecord("5000000002", items)
	require.NoError(t, err)

	covid, ok := person.Lookup("COVID")
	require.True(t, ok)
	status, _ := covid.Get("LAST_INVITE_STATUS")
	assert.Equal(t, "SENT", status)
}

func TestPersonKey(t *testing.T) {
	assert.Equal(t, "PERSON#5000000001", personKey("5000000001"))
}
