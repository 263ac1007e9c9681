// Package domain defines the core business types for the eligibility
// signposting engine: campaign configuration, patient records, decision
// statuses, and the result structures returned to callers.
//
// Types in this package are pure value objects with no behavior beyond
// validation and selection helpers. They are the shared language between
// the rule engine, the storage adapters, and the HTTP handlers.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No AWS clients, no http.Request, no context.Context in struct fields
//   - JSON tags are allowed (they're metadata, not behavior)
//   - Validation and selection methods are allowed (pure functions on the type)
//   - Constants and enums belong here
//
// Campaign configuration types carry PascalCase JSON tags because they must
// round-trip exactly against the stored campaign wire format (dates as
// YYYYMMDD strings, flags as "Y"/"N"). Result types use snake_case tags for
// the API response shape.
package domain
