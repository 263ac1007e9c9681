package operators

import "regexp"

var (
	nvlPattern    = regexp.MustCompile(`\[\[NVL:([^\]]*)\]\]`)
	offsetPattern = regexp.MustCompile(`\[\[OFFSET:(\d{8})\]\]`)
)

// extractNVL pulls an embedded [[NVL:default]] marker out of a comparator.
// It returns the default value, the comparator with the marker removed, and
// whether a marker was found.
func extractNVL(comparator string) (def, stripped string, found bool) {
	m := nvlPattern.FindStringSubmatch(comparator)
	if m == nil {
		return "", comparator, false
	}
	return m[1], nvlPattern.ReplaceAllString(comparator, ""), true
}

// extractOffset pulls an embedded [[OFFSET:YYYYMMDD]] marker out of a
// comparator. It returns the anchor date string, the comparator with the
// marker removed, and whether a marker was found.
func extractOffset(comparator string) (anchor, stripped string, found bool) {
	m := offsetPattern.FindStringSubmatch(comparator)
	if m == nil {
		return "", comparator, false
	}
	return m[1], offsetPattern.ReplaceAllString(comparator, ""), true
}
