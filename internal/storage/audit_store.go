package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/ignite/eligibility-signpost/internal/audit"
)

// auditRetention is how long audit records are kept before DynamoDB expires
// them.
const auditRetention = 90 * 24 * time.Hour

// AuditStore persists audit records to DynamoDB, partitioned by calendar day
// so a day's checks can be queried in one pass.
type AuditStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewAuditStore(client *dynamodb.Client, tableName string) *AuditStore {
	return &AuditStore{client: client, tableName: tableName}
}

// auditItem is the DynamoDB row shape for one audit record.
type auditItem struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	Data      string `dynamodbav:"Data"`
	Timestamp string `dynamodbav:"Timestamp"`
	TTL       int64  `dynamodbav:"TTL,omitempty"`
}

// Write stores one audit record.
func (s *AuditStore) Write(ctx context.Context, rec audit.Record) error {
	item, err := buildAuditItem(rec)
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshaling audit item: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("putting audit record to DynamoDB: %w", err)
	}
	return nil
}

func buildAuditItem(rec audit.Record) (auditItem, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return auditItem{}, fmt.Errorf("marshaling audit record: %w", err)
	}
	ts := rec.Timestamp.UTC()
	return auditItem{
		PK:        fmt.Sprintf("AUDIT#%s", ts.Format("2006-01-02")),
		SK:        fmt.Sprintf("%s#%s", ts.Format("15:04:05.000"), rec.AuditID),
		Data:      string(data),
		Timestamp: ts.Format(time.RFC3339),
		TTL:       ts.Add(auditRetention).Unix(),
	}, nil
}
