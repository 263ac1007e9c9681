package operators

import (
	"strconv"
	"strings"
	"time"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

// rangeFactory builds between/not_between. The comparator is a "lo,hi" pair
// taken order-independently (min and max are derived), compared numerically.
// A malformed comparator is a configuration error; a missing, empty, or
// non-numeric attribute never matches either variant.
func rangeFactory(negate bool) Factory {
	return func(comparator string, _ time.Time) (Predicate, error) {
		parts := strings.Split(comparator, ",")
		if len(parts) != 2 {
			return nil, domain.NewConfigurationError("between comparator %q: expected \"lo,hi\"", comparator)
		}
		a, errA := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		b, errB := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errA != nil || errB != nil {
			return nil, domain.NewConfigurationError("between comparator %q: bounds must be numeric", comparator)
		}
		lo, hi := a, b
		if lo > hi {
			lo, hi = hi, lo
		}
		return rangePredicate{lo: lo, hi: hi, negate: negate}, nil
	}
}

type rangePredicate struct {
	lo, hi float64
	negate bool
}

func (p rangePredicate) Matches(v Value) bool {
	if !v.Present || v.Raw == "" {
		return false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v.Raw), 64)
	if err != nil {
		return false
	}
	within := n >= p.lo && n <= p.hi
	if p.negate {
		return !within
	}
	return within
}
