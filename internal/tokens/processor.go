package tokens

import (
	"regexp"
	"strings"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

var tokenPattern = regexp.MustCompile(`\[\[.+?\]\]`)

// Known PERSON attributes that may be referenced even when the person's
// record does not currently carry them.
var personAttributes = map[string]struct{}{
	"DATE_OF_BIRTH":      {},
	"POSTCODE":           {},
	"GENDER":             {},
	"GP_PRACTICE":        {},
	"PREFERRED_LANGUAGE": {},
}

// Known TARGET fields, by the same rule.
var targetFields = map[string]struct{}{
	"LAST_SUCCESSFUL_DATE":        {},
	"LAST_INVITE_DATE":            {},
	"LAST_INVITE_STATUS":          {},
	"BOOKED_APPOINTMENT_DATE":     {},
	"BOOKED_APPOINTMENT_PROVIDER": {},
	"ELIGIBILITY_CODE":            {},
}

// Processor substitutes [[...]] placeholders in display text with values
// from a person's records.
type Processor struct {
	derived *DerivedRegistry
}

func NewProcessor() *Processor {
	return &Processor{derived: NewDerivedRegistry()}
}

// Substitute replaces every token in s. Unknown levels, names or functions
// are configuration errors; known names with no data become "".
func (p *Processor) Substitute(s string, person domain.PersonRecord) (string, error) {
	if !strings.Contains(s, "[[") {
		return s, nil
	}
	var firstErr error
	out := tokenPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}
		value, err := p.resolve(match[2:len(match)-2], person)
		if err != nil {
			firstErr = err
			return match
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

func (p *Processor) resolve(body string, person domain.PersonRecord) (string, error) {
	tok, err := parseToken(body)
	if err != nil {
		return "", err
	}
	switch tok.level {
	case levelPerson:
		return p.resolvePerson(tok, person)
	case levelTarget:
		return p.resolveTarget(tok, person)
	default:
		return p.resolveCohort(tok, person)
	}
}

func (p *Processor) resolvePerson(tok *token, person domain.PersonRecord) (string, error) {
	if tok.funcName != "" {
		return "", malformed(tok.raw, "PERSON tokens do not take functions")
	}
	attrs, ok := person.Lookup(domain.AttributeRecordPerson)
	if !p.personNameKnown(tok.name, attrs) {
		return "", malformed(tok.raw, "unknown person attribute "+tok.name)
	}
	if !ok {
		return "", nil
	}
	raw, _ := attrs.Get(tok.name)
	return p.format(raw, tok)
}

func (p *Processor) resolveTarget(tok *token, person domain.PersonRecord) (string, error) {
	attrs, hasRecord := person.Lookup(tok.name)

	if tok.funcName != "" {
		if !p.derived.Derivable(tok.field) {
			return "", malformed(tok.raw, tok.field+" is not a derivable field")
		}
		if !hasRecord {
			return "", nil
		}
		return p.derived.Apply(tok, attrs)
	}

	if !p.targetFieldKnown(tok.field, attrs) {
		return "", malformed(tok.raw, "unknown target field "+tok.field)
	}
	if !hasRecord {
		return "", nil
	}
	raw, _ := attrs.Get(tok.field)
	return p.format(raw, tok)
}

func (p *Processor) resolveCohort(tok *token, person domain.PersonRecord) (string, error) {
	if tok.funcName != "" {
		return "", malformed(tok.raw, "COHORT tokens do not take functions")
	}
	if tok.name == "" || tok.name == domain.CohortMembershipsKey {
		return p.format(strings.Join(person.CohortMemberships(), ","), tok)
	}
	attrs, ok := person.Lookup(domain.AttributeRecordCohorts)
	if !ok {
		return "", nil
	}
	raw, _ := attrs.Get(tok.name)
	return p.format(raw, tok)
}

// format applies an optional DATE suffix to a raw wire-date value.
func (p *Processor) format(raw string, tok *token) (string, error) {
	if tok.dateFormat == nil || raw == "" {
		return raw, nil
	}
	d, err := domain.ParseWireDate(raw)
	if err != nil {
		return "", nil
	}
	return formatDate(d.Time, tok.dateFormat)
}

func (p *Processor) personNameKnown(name string, attrs domain.Attributes) bool {
	if _, ok := personAttributes[name]; ok {
		return true
	}
	_, ok := attrs.Get(name)
	return ok
}

func (p *Processor) targetFieldKnown(field string, attrs domain.Attributes) bool {
	if _, ok := targetFields[field]; ok {
		return true
	}
	if p.derived.Derivable(field) {
		return true
	}
	_, ok := attrs.Get(field)
	return ok
}

// SubstituteCondition rewrites every display string carried by a condition.
func (p *Processor) SubstituteCondition(cond *domain.Condition, person domain.PersonRecord) error {
	var err error
	if cond.StatusText, err = p.Substitute(cond.StatusText, person); err != nil {
		return err
	}
	for i := range cond.CohortResults {
		if err = p.substituteCohortResult(&cond.CohortResults[i], person); err != nil {
			return err
		}
	}
	for i := range cond.SuitabilityResults {
		if cond.SuitabilityResults[i].RuleText, err = p.Substitute(cond.SuitabilityResults[i].RuleText, person); err != nil {
			return err
		}
	}
	for i := range cond.Actions {
		a := &cond.Actions[i]
		if a.ActionDescription, err = p.Substitute(a.ActionDescription, person); err != nil {
			return err
		}
		if a.URLLabel, err = p.Substitute(a.URLLabel, person); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) substituteCohortResult(cr *domain.CohortGroupResult, person domain.PersonRecord) error {
	var err error
	if cr.Description, err = p.Substitute(cr.Description, person); err != nil {
		return err
	}
	for i := range cr.Reasons {
		if cr.Reasons[i].RuleText, err = p.Substitute(cr.Reasons[i].RuleText, person); err != nil {
			return err
		}
	}
	for i := range cr.AuditRules {
		if cr.AuditRules[i].RuleText, err = p.Substitute(cr.AuditRules[i].RuleText, person); err != nil {
			return err
		}
	}
	return nil
}
