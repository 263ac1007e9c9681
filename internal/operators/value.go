package operators

// Value is a resolved attribute value. Present distinguishes an attribute
// that exists with an empty string from one that is missing entirely; the
// two behave differently under several operators.
type Value struct {
	Raw     string
	Present bool
}

// Of wraps a present attribute value.
func Of(raw string) Value {
	return Value{Raw: raw, Present: true}
}

// Missing is the value of an attribute that does not exist.
func Missing() Value {
	return Value{}
}
