package operators

import (
	"strings"
	"time"
)

// setFactory builds the in/MemberOf family. Both sides split on comma; a
// non-empty intersection is a match for "in" and a miss for "not_in". A
// missing attribute splits to the empty set, so it never matches "in" and
// always matches "not_in".
func setFactory(negate bool) Factory {
	return func(comparator string, _ time.Time) (Predicate, error) {
		return setPredicate{members: splitSet(comparator), negate: negate}, nil
	}
}

type setPredicate struct {
	members map[string]bool
	negate  bool
}

func (p setPredicate) Matches(v Value) bool {
	intersects := false
	if v.Present {
		for _, item := range strings.Split(v.Raw, ",") {
			if p.members[strings.TrimSpace(item)] {
				intersects = true
				break
			}
		}
	}
	if p.negate {
		return !intersects
	}
	return intersects
}

func splitSet(s string) map[string]bool {
	out := make(map[string]bool)
	for _, item := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out[trimmed] = true
		}
	}
	return out
}
