package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ignite/eligibility-signpost/internal/domain"
	"github.com/ignite/eligibility-signpost/internal/eligibility"
)

// PersonStore reads person eligibility data from DynamoDB. A person's rows
// share the partition key PERSON#<nhs number>; each row is one attribute
// record (PERSON demographics, COHORTS memberships, or a per-condition
// record such as RSV).
type PersonStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewPersonStore(client *dynamodb.Client, tableName string) *PersonStore {
	return &PersonStore{client: client, tableName: tableName}
}

// personItem is the DynamoDB row shape for one attribute record.
type personItem struct {
	PK            string            `dynamodbav:"PK"`
	SK            string            `dynamodbav:"SK"`
	AttributeType string            `dynamodbav:"ATTRIBUTE_TYPE"`
	Attributes    map[string]string `dynamodbav:"Attributes"`
}

// Person loads every attribute record for an NHS number. No rows at all
// means the person is unknown and eligibility.ErrPersonNotFound is returned.
func (s *PersonStore) Person(ctx context.Context, nhsNumber string) (domain.PersonRecord, error) {
	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: personKey(nhsNumber)},
		},
	})
	if err != nil {
		return domain.PersonRecord{}, fmt.Errorf("querying person data: %w", err)
	}
	if len(result.Items) == 0 {
		return domain.PersonRecord{}, fmt.Errorf("nhs number %s: %w", nhsNumber, eligibility.ErrPersonNotFound)
	}
	return buildPersonRecord(nhsNumber, result.Items)
}

// buildPersonRecord assembles a person from their queried rows. A row missing
// ATTRIBUTE_TYPE falls back to its sort key for the record type.
func buildPersonRecord(nhsNumber string, items []map[string]types.AttributeValue) (domain.PersonRecord, error) {
	records := make(map[string]domain.Attributes, len(items))
	for _, item := range items {
		var row personItem
		if err := attributevalue.UnmarshalMap(item, &row); err != nil {
			return domain.PersonRecord{}, fmt.Errorf("unmarshaling person row: %w", err)
		}
		recordType := row.AttributeType
		if recordType == "" {
			recordType = row.SK
		}
		records[recordType] = domain.Attributes(row.Attributes)
	}
	return domain.NewPersonRecord(nhsNumber, records), nil
}

func personKey(nhsNumber string) string {
	return fmt.Sprintf("PERSON#%s", nhsNumber)
}
