// Package audit builds and persists the decision trail for each eligibility
// check. Every response the engine returns has a matching audit record
// capturing which campaign, iteration and rules produced each condition's
// outcome.
package audit
