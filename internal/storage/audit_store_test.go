package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/eligibility-signpost/internal/audit"
)

func TestBuildAuditItem(t *testing.T) {
	rec := audit.Record{
		AuditID:   "a1b2c3",
		Timestamp: time.Date(2025, 6, 1, 14, 30, 15, 250_000_000, time.UTC),
		NHSNumber: "5000000001",
		Category:  "ALL",
	}

	item, err := buildAuditItem(rec)
	require.NoError(t, err)

	assert.Equal(t, "AUDIT#2025-06-01", item.PK)
	assert.Equal(t, "14:30:15.250#a1b2c3", item.SK)
	assert.Equal(t, "2025-06-01T14:30:15Z", item.Timestamp)
	assert.Equal(t, rec.Timestamp.Add(auditRetention).Unix(), item.TTL)

	var decoded audit.Record
	require.NoError(t, json.Unmarshal([]byte(item.Data), &decoded))
	assert.Equal(t, "5000000001", decoded.NHSNumber)
}

func TestBuildAuditItem_NormalisesToUTC(t *testing.T) {
	loc := time.FixedZone("BST", 3600)
	rec := audit.Record{
		AuditID:   "x",
		Timestamp: time.Date(2025, 6, 2, 0, 30, 0, 0, loc),
	}

	item, err := buildAuditItem(rec)
	require.NoError(t, err)
	assert.Equal(t, "AUDIT#2025-06-01", item.PK)
}
