package operators

import "time"

// checkFactory builds the nullness/emptiness/boolean operators, which ignore
// their comparator entirely.
func checkFactory(test func(v Value) bool) Factory {
	return func(_ string, _ time.Time) (Predicate, error) {
		return checkPredicate{test: test}, nil
	}
}

type checkPredicate struct {
	test func(v Value) bool
}

func (p checkPredicate) Matches(v Value) bool {
	return p.test(v)
}

// Missing attributes and empty strings are both treated as null; is_empty
// shares the same definition since attribute values are strings and the
// empty string is the only falsy one.
func isNull(v Value) bool    { return !v.Present || v.Raw == "" }
func isNotNull(v Value) bool { return !isNull(v) }

// is_true / is_false test strict identity against the canonical boolean
// spellings, not truthiness.
func isTrue(v Value) bool {
	return v.Present && (v.Raw == "True" || v.Raw == "true")
}

func isFalse(v Value) bool {
	return v.Present && (v.Raw == "False" || v.Raw == "false")
}
