package operators

import (
	"strconv"
	"strings"
	"time"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

// comparison folds a three-way compare result (-1, 0, 1) into a match.
type comparison func(cmp int) bool

// scalarComparisons maps each scalar operator to its comparison.
var scalarComparisons = map[domain.Operator]comparison{
	domain.OperatorEquals:    func(c int) bool { return c == 0 },
	domain.OperatorNotEquals: func(c int) bool { return c != 0 },
	domain.OperatorGT:        func(c int) bool { return c > 0 },
	domain.OperatorGTE:       func(c int) bool { return c >= 0 },
	domain.OperatorLT:        func(c int) bool { return c < 0 },
	domain.OperatorLTE:       func(c int) bool { return c <= 0 },
}

func scalarFactory(op domain.Operator, cmp comparison) Factory {
	return func(comparator string, _ time.Time) (Predicate, error) {
		return scalarPredicate{op: op, comparator: comparator, cmp: cmp}, nil
	}
}

// scalarPredicate compares the attribute against the comparator, coercing
// both sides to integers when both look integer-like and falling back to
// string ordering otherwise.
//
// Edge semantics preserved from the stored configs' contract:
//   - a missing attribute matches "!=" and nothing else;
//   - an empty-string attribute participates only in "="/"!=" comparison;
//   - ordering operators never match missing or empty attributes.
type scalarPredicate struct {
	op         domain.Operator
	comparator string
	cmp        comparison
}

func (p scalarPredicate) Matches(v Value) bool {
	if !v.Present {
		return p.op == domain.OperatorNotEquals
	}
	if v.Raw == "" {
		switch p.op {
		case domain.OperatorEquals:
			return p.comparator == ""
		case domain.OperatorNotEquals:
			return p.comparator != ""
		default:
			return false
		}
	}

	if a, aOK := parseInt(v.Raw); aOK {
		if b, bOK := parseInt(p.comparator); bOK {
			return p.cmp(compareInts(a, b))
		}
	}
	return p.cmp(strings.Compare(v.Raw, p.comparator))
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
