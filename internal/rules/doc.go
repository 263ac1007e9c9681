// Package rules evaluates iteration rules against patient records.
//
// Calculator evaluates exactly one rule and reports whether it excludes the
// patient and why. Processor drives a cohort through the fixed evaluation
// pipeline — base eligibility, then filter rules, then suppression rules —
// applying the priority-group semantics campaign authors rely on: rules
// sharing a priority form a group that only excludes when every rule in it
// matches.
package rules
