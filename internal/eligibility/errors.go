package eligibility

import "errors"

var (
	// ErrPersonNotFound is returned when the person repository has no records
	// at all for an NHS number.
	ErrPersonNotFound = errors.New("person not found")

	// ErrUnknownCategory is returned for a category outside the known set.
	ErrUnknownCategory = errors.New("unknown campaign category")
)
