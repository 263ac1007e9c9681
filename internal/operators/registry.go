package operators

import (
	"strings"
	"time"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

// Predicate evaluates a resolved attribute value against a rule's
// comparator. Implementations are immutable once constructed.
type Predicate interface {
	Matches(v Value) bool
}

// Factory builds a predicate from a rule's comparator. Date-delta operators
// anchor their cutoff on today unless the comparator embeds an OFFSET
// marker. A factory returns a ConfigurationError for a malformed comparator.
type Factory func(comparator string, today time.Time) (Predicate, error)

// Registry maps operator names to predicate factories. Build one with
// NewRegistry at startup and pass it by reference; it is immutable
// afterwards.
type Registry struct {
	factories map[domain.Operator]Factory
	dateOps   map[domain.Operator]bool
}

// NewRegistry builds the registry with every shipped operator registered.
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[domain.Operator]Factory),
		dateOps:   make(map[domain.Operator]bool),
	}

	// Scalar operators share one factory parameterized by comparison.
	for op, cmp := range scalarComparisons {
		r.register(op, scalarFactory(op, cmp))
	}

	r.register(domain.OperatorContains, textFactory(textContains, false))
	r.register(domain.OperatorNotContains, textFactory(textContains, true))
	r.register(domain.OperatorStartsWith, textFactory(strings.HasPrefix, false))
	r.register(domain.OperatorNotStartsWith, textFactory(strings.HasPrefix, true))
	r.register(domain.OperatorEndsWith, textFactory(strings.HasSuffix, false))

	r.register(domain.OperatorIn, setFactory(false))
	r.register(domain.OperatorMemberOf, setFactory(false))
	r.register(domain.OperatorNotIn, setFactory(true))
	r.register(domain.OperatorNotaMemberOf, setFactory(true))

	r.register(domain.OperatorIsNull, checkFactory(isNull))
	r.register(domain.OperatorIsNotNull, checkFactory(isNotNull))
	r.register(domain.OperatorIsEmpty, checkFactory(isNull))
	r.register(domain.OperatorIsNotEmpty, checkFactory(isNotNull))
	r.register(domain.OperatorIsTrue, checkFactory(isTrue))
	r.register(domain.OperatorIsFalse, checkFactory(isFalse))

	r.register(domain.OperatorBetween, rangeFactory(false))
	r.register(domain.OperatorNotBetween, rangeFactory(true))

	// Date-delta operators are generated per time unit and comparison.
	for unitName, unit := range dateUnits {
		for cmpName, cmp := range dateComparisons {
			op := domain.Operator(unitName + "_" + cmpName)
			r.register(op, dateDeltaFactory(unit, cmp))
			r.dateOps[op] = true
		}
	}

	return r
}

func (r *Registry) register(op domain.Operator, f Factory) {
	r.factories[op] = f
}

// Predicate constructs the predicate for an operator and comparator. An
// unregistered operator is a configuration error. NVL markers are applied
// here for non-date operators so individual predicates never see them.
func (r *Registry) Predicate(op domain.Operator, comparator string, today time.Time) (Predicate, error) {
	factory, ok := r.factories[op]
	if !ok {
		return nil, domain.NewConfigurationError("operator %q is not implemented", op)
	}

	if !r.dateOps[op] {
		if def, stripped, found := extractNVL(comparator); found {
			inner, err := factory(stripped, today)
			if err != nil {
				return nil, err
			}
			return nvlPredicate{def: def, inner: inner}, nil
		}
	}
	return factory(comparator, today)
}

// nvlPredicate substitutes a default value for a missing attribute before
// delegating to the wrapped predicate.
type nvlPredicate struct {
	def   string
	inner Predicate
}

func (p nvlPredicate) Matches(v Value) bool {
	if !v.Present {
		v = Of(p.def)
	}
	return p.inner.Matches(v)
}
