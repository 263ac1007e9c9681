// Package tokens replaces templated placeholders in decision output with
// live patient data.
//
// A token has the shape
//
//	[[LEVEL.NAME[.FIELD]][:FUNC(args)][:DATE(fmt)]]
//
// where LEVEL is PERSON, TARGET, or COHORT (case-insensitive); TARGET tokens
// name a condition and a field; FUNC names a registered derived-value
// function; and DATE requests strftime-style output formatting (an empty
// pattern means blank output).
//
// Malformed tokens, unknown attribute names, and unregistered functions are
// campaign configuration errors. Missing data for an otherwise valid token
// always yields the empty string.
package tokens
