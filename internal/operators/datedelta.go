package operators

import (
	"strconv"
	"strings"
	"time"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

// dateUnit applies a signed offset to an anchor date.
type dateUnit func(anchor time.Time, offset int) time.Time

var dateUnits = map[string]dateUnit{
	"day":  func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) },
	"week": func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) },
	"year": func(t time.Time, n int) time.Time { return t.AddDate(n, 0, 0) },
}

// dateComparison compares the attribute date against the cutoff.
type dateComparison func(attr, cutoff time.Time) bool

var dateComparisons = map[string]dateComparison{
	"lt":  func(a, c time.Time) bool { return a.Before(c) },
	"lte": func(a, c time.Time) bool { return !a.After(c) },
	"gt":  func(a, c time.Time) bool { return a.After(c) },
	"gte": func(a, c time.Time) bool { return !a.Before(c) },
}

// dateDeltaFactory builds the day/week/year delta operators. The comparator
// is an integer offset, optionally carrying an [[OFFSET:YYYYMMDD]] marker
// that replaces today as the anchor. The cutoff is anchor + offset in the
// stated unit; the rule matches when the attribute date (YYYYMMDD) satisfies
// the comparison against the cutoff. An unparseable or missing attribute
// never matches.
func dateDeltaFactory(unit dateUnit, cmp dateComparison) Factory {
	return func(comparator string, today time.Time) (Predicate, error) {
		anchor := domain.DateOf(today).Time
		raw := comparator
		if anchorStr, stripped, found := extractOffset(comparator); found {
			parsed, err := domain.ParseWireDate(anchorStr)
			if err != nil {
				return nil, domain.NewConfigurationError("date operator anchor: %v", err)
			}
			anchor = parsed.Time
			raw = stripped
		}
		offset, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, domain.NewConfigurationError("date operator comparator %q: offset must be an integer", comparator)
		}
		return dateDeltaPredicate{cutoff: unit(anchor, offset), cmp: cmp}, nil
	}
}

type dateDeltaPredicate struct {
	cutoff time.Time
	cmp    dateComparison
}

func (p dateDeltaPredicate) Matches(v Value) bool {
	if !v.Present || v.Raw == "" {
		return false
	}
	attr, err := domain.ParseWireDate(strings.TrimSpace(v.Raw))
	if err != nil {
		return false
	}
	return p.cmp(attr.Time, p.cutoff)
}
