package operators

import (
	"strings"
	"time"
)

func textContains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}

// textFactory builds predicates for substring/prefix/suffix operators. The
// negate flag covers the not_contains / not_starts_with variants. A missing
// attribute never matches a string operator, negated or not.
func textFactory(test func(value, comparator string) bool, negate bool) Factory {
	return func(comparator string, _ time.Time) (Predicate, error) {
		return textPredicate{comparator: comparator, test: test, negate: negate}, nil
	}
}

type textPredicate struct {
	comparator string
	test       func(value, comparator string) bool
	negate     bool
}

func (p textPredicate) Matches(v Value) bool {
	if !v.Present {
		return false
	}
	matched := p.test(v.Raw, p.comparator)
	if p.negate {
		return !matched
	}
	return matched
}
