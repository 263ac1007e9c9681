package domain

import "strings"

// Attribute record types that every patient may carry. Target records (RSV,
// COVID, FLU, ...) are keyed by the condition name itself.
const (
	AttributeRecordPerson  = "PERSON"
	AttributeRecordCohorts = "COHORTS"
)

// CohortMembershipsKey is the attribute on the COHORTS record holding the
// patient's comma-joined cohort labels.
const CohortMembershipsKey = "COHORT_MEMBERSHIPS"

// Attributes is one attribute record: a bag of string-keyed string values.
// Campaign-defined attribute names are data, not compile-time types, so the
// map stays untyped beyond strings.
type Attributes map[string]string

// Get looks up an attribute, distinguishing a missing key from an empty
// value.
func (a Attributes) Get(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a[name]
	return v, ok
}

// PersonRecord is the typed view over a patient's stored attribute records.
// It is read-only once built and safe for concurrent use.
type PersonRecord struct {
	nhsNumber string
	records   map[string]Attributes
}

// NewPersonRecord builds a PersonRecord from raw attribute records keyed by
// their record type.
func NewPersonRecord(nhsNumber string, records map[string]Attributes) PersonRecord {
	if records == nil {
		records = map[string]Attributes{}
	}
	return PersonRecord{nhsNumber: nhsNumber, records: records}
}

// NHSNumber returns the patient identifier the record was loaded for.
func (p PersonRecord) NHSNumber() string { return p.nhsNumber }

// Lookup returns the attribute record of the given type (e.g. "PERSON",
// "RSV") and whether it exists.
func (p PersonRecord) Lookup(recordType string) (Attributes, bool) {
	attrs, ok := p.records[recordType]
	return attrs, ok
}

// CohortMemberships returns the patient's current cohort labels, read from
// the COHORTS record. A patient with no COHORTS record has no memberships.
func (p PersonRecord) CohortMemberships() []string {
	cohorts, ok := p.Lookup(AttributeRecordCohorts)
	if !ok {
		return nil
	}
	raw, ok := cohorts.Get(CohortMembershipsKey)
	if !ok || raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// HasCohort reports whether the patient holds the given cohort label.
func (p PersonRecord) HasCohort(label string) bool {
	for _, m := range p.CohortMemberships() {
		if m == label {
			return true
		}
	}
	return false
}
