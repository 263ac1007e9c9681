package tokens

import (
	"strconv"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

// derivedFunc computes a derived value from a target record. It returns ""
// when the data needed to derive the value is absent.
type derivedFunc func(attrs domain.Attributes, source string, args []string, dateFormat *string) (string, error)

// DerivedRegistry maps function names to derived-value implementations and
// records which source field each derivable output reads by default.
type DerivedRegistry struct {
	funcs   map[string]derivedFunc
	sources map[string]string
}

// NewDerivedRegistry builds the registry with the built-in derivations.
func NewDerivedRegistry() *DerivedRegistry {
	return &DerivedRegistry{
		funcs: map[string]derivedFunc{
			"ADD_DAYS": addDays,
		},
		sources: map[string]string{
			"NEXT_DOSE_DUE": "LAST_SUCCESSFUL_DATE",
		},
	}
}

// Derivable reports whether field is a known derived output name.
func (r *DerivedRegistry) Derivable(field string) bool {
	_, ok := r.sources[field]
	return ok
}

// Apply runs the named function against the target record. The token's field
// name selects the default source attribute unless the function's arguments
// override it.
func (r *DerivedRegistry) Apply(tok *token, attrs domain.Attributes) (string, error) {
	fn, ok := r.funcs[tok.funcName]
	if !ok {
		return "", malformed(tok.raw, "unknown function "+tok.funcName)
	}
	source, ok := r.sources[tok.field]
	if !ok {
		return "", malformed(tok.raw, tok.field+" is not a derivable field")
	}
	return fn(attrs, source, tok.funcArgs, tok.dateFormat)
}

// addDays reads a wire date from the source attribute, shifts it by a whole
// number of days and formats the result. An optional second argument names an
// alternative source attribute. Absent or unparseable dates yield "".
func addDays(attrs domain.Attributes, source string, args []string, dateFormat *string) (string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", domain.NewConfigurationError("ADD_DAYS takes one or two arguments, got %d", len(args))
	}
	days, err := strconv.Atoi(args[0])
	if err != nil {
		return "", domain.NewConfigurationError("ADD_DAYS offset %q is not an integer", args[0])
	}
	if len(args) == 2 {
		source = args[1]
	}

	raw, ok := attrs.Get(source)
	if !ok || raw == "" {
		return "", nil
	}
	base, err := domain.ParseWireDate(raw)
	if err != nil {
		return "", nil
	}
	return formatDate(base.AddDate(0, 0, days), dateFormat)
}

// formatDate renders t using the wire layout, or a strftime pattern when a
// DATE suffix supplied one.
func formatDate(t time.Time, dateFormat *string) (string, error) {
	if dateFormat == nil {
		return t.Format(domain.DateLayout), nil
	}
	if *dateFormat == "" {
		return "", nil
	}
	out, err := strftime.Format(*dateFormat, t)
	if err != nil {
		return "", domain.NewConfigurationError("invalid date format %q: %v", *dateFormat, err)
	}
	return out, nil
}
