package sqldb

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cleardemon/cdf/sqlval"
)

// Placeholder is the reserved character marking a positional parameter
// substitution point in caller-supplied SQL text.
const Placeholder = '?'

// sentinel temporarily stands in for literal placeholder characters
// inside string values during substitution. The byte must never appear
// in legitimate data; this is a documented limitation of the scheme.
const sentinel = "\x01"

// Parameter is one pending (type, value) pair awaiting substitution.
type Parameter struct {
	Type  sqlval.Type
	Value any
}

// Substitute scans query left-to-right, replacing each placeholder with
// the SQL literal for the next pending parameter. Exactly one parameter
// must exist per placeholder: a short supply fails with
// ErrMissingParameter, leftovers with ErrTooManyParameters. Literal
// placeholder characters inside string values survive verbatim.
func Substitute(query string, params []Parameter) (string, error) {
	var b strings.Builder
	b.Grow(len(query))
	next := 0
	for i := 0; i < len(query); i++ {
		if query[i] != Placeholder {
			b.WriteByte(query[i])
			continue
		}
		if next >= len(params) {
			return "", fmt.Errorf("%w: placeholder %d of query %q", ErrMissingParameter, next+1, query)
		}
		fragment, err := formatParameter(params[next])
		if err != nil {
			return "", err
		}
		b.WriteString(fragment)
		next++
	}
	if next < len(params) {
		return "", fmt.Errorf("%w: %d bound, %d consumed", ErrTooManyParameters, len(params), next)
	}
	return strings.ReplaceAll(b.String(), sentinel, string(Placeholder)), nil
}

// formatParameter renders one parameter as a literal, masking literal
// placeholder characters in textual values so the substitution scan
// cannot mistake them for unresolved tokens.
func formatParameter(p Parameter) (string, error) {
	if p.Type.IsTextual() && p.Value != nil {
		coerced, err := sqlval.Coerce(p.Type, p.Value)
		if err != nil {
			return "", err
		}
		switch v := coerced.(type) {
		case string:
			return sqlval.Format(p.Type, strings.ReplaceAll(v, string(Placeholder), sentinel))
		case []byte:
			return sqlval.Format(p.Type, bytes.ReplaceAll(v, []byte{Placeholder}, []byte(sentinel)))
		}
	}
	return sqlval.Format(p.Type, p.Value)
}
