// Package operators implements the named comparison predicates usable by
// campaign rules. Predicates are registered once in an explicit table built
// by NewRegistry and are stateless; a Registry is safe for concurrent use
// and can be shared across requests.
//
// Comparators may embed two markers:
//
//   - [[NVL:default]]  — substitute default for a missing attribute before
//     evaluating (non-date operators).
//   - [[OFFSET:YYYYMMDD]] — replace "today" as the anchor date of a
//     date-delta operator.
//
// Requesting an unregistered operator is a campaign configuration error,
// not a runtime-recoverable condition.
package operators
