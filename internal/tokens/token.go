package tokens

import (
	"strings"

	"github.com/ignite/eligibility-signpost/internal/domain"
)

const (
	levelPerson = "PERSON"
	levelTarget = "TARGET"
	levelCohort = "COHORT"
)

// token is a parsed placeholder body.
type token struct {
	raw   string // original [[...]] text, for error messages
	level string
	name  string // PERSON/COHORT attribute name, or TARGET condition name
	field string // TARGET field name

	funcName string
	funcArgs []string

	// dateFormat is nil when no :DATE() suffix is present. A pointer
	// distinguishes "no formatting" from "format to blank" (empty pattern).
	dateFormat *string
}

// parseToken parses the body between "[[" and "]]".
func parseToken(body string) (*token, error) {
	tok := &token{raw: "[[" + body + "]]"}

	path := body
	rest := ""
	if i := strings.IndexByte(body, ':'); i >= 0 {
		path, rest = body[:i], body[i:]
	}

	segments := strings.Split(path, ".")
	tok.level = strings.ToUpper(strings.TrimSpace(segments[0]))
	switch tok.level {
	case levelPerson:
		if len(segments) != 2 {
			return nil, malformed(tok.raw, "PERSON tokens take exactly one attribute name")
		}
		tok.name = segments[1]
	case levelTarget:
		if len(segments) != 3 {
			return nil, malformed(tok.raw, "TARGET tokens take a condition and a field")
		}
		tok.name = segments[1]
		tok.field = segments[2]
	case levelCohort:
		if len(segments) > 2 {
			return nil, malformed(tok.raw, "COHORT tokens take at most one attribute name")
		}
		if len(segments) == 2 {
			tok.name = segments[1]
		}
	default:
		return nil, malformed(tok.raw, "unknown attribute level "+segments[0])
	}

	for rest != "" {
		if rest[0] != ':' {
			return nil, malformed(tok.raw, "unexpected trailing text")
		}
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return nil, malformed(tok.raw, "function suffix is missing parentheses")
		}
		closing := strings.IndexByte(rest[open:], ')')
		if closing < 0 {
			return nil, malformed(tok.raw, "function suffix is missing a closing parenthesis")
		}
		ident := strings.ToUpper(rest[1:open])
		args := rest[open+1 : open+closing]
		rest = rest[open+closing+1:]

		switch {
		case ident == "DATE":
			if tok.dateFormat != nil {
				return nil, malformed(tok.raw, "duplicate DATE suffix")
			}
			format := args
			tok.dateFormat = &format
		case tok.funcName != "":
			return nil, malformed(tok.raw, "only one function suffix is allowed")
		default:
			if ident == "" {
				return nil, malformed(tok.raw, "function suffix has no name")
			}
			tok.funcName = ident
			tok.funcArgs = splitArgs(args)
		}
	}
	return tok, nil
}

func splitArgs(args string) []string {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	parts := strings.Split(args, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

func malformed(raw, detail string) error {
	return domain.NewConfigurationError("malformed token %s: %s", raw, detail)
}
