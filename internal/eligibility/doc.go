// Package eligibility orchestrates a full eligibility check: it selects the
// live campaigns relevant to a query, runs each campaign's current iteration
// through the rule processor, picks the best outcome per condition, resolves
// communication actions and substitutes display tokens.
//
// Rules for this package:
//
//  1. Campaign configs and person records come in through the CampaignSource
//     and PersonRepository interfaces; this package never talks to storage
//     directly.
//  2. Configuration faults surface as *domain.ConfigurationError and abort the
//     check. Absent person data never does; it reads as missing values.
//  3. Output order follows input order: conditions appear in the order their
//     campaigns were supplied, and ties between campaigns go to the first.
package eligibility
