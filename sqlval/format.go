package sqlval

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cleardemon/cdf/coerce"
)

// Coerce validates value against the declared type and converts it to
// the canonical Go representation for that type (string, int64,
// float64, bool, time.Time or []byte). Nil passes through untouched.
// String parsing follows the permissive rules of the coerce package; a
// runtime type the declared type cannot carry yields a MismatchError.
func Coerce(t Type, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch t {
	case TypeString, TypeText:
		switch value.(type) {
		case string, []byte, bool, int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64, float32, float64, time.Time, fmt.Stringer:
			return coerce.AsString(value), nil
		}
	case TypeInteger:
		switch value.(type) {
		case string, []byte, bool, int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64, float32, float64:
			return coerce.AsInt64(value), nil
		}
	case TypeFloat:
		switch value.(type) {
		case string, []byte, bool, int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64, float32, float64:
			return coerce.AsFloat(value), nil
		}
	case TypeBool:
		switch value.(type) {
		case string, []byte, bool, int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64, float32, float64:
			return coerce.AsBool(value), nil
		}
	case TypeTimestamp:
		// Timestamps accept anything; unparseable input collapses to
		// the epoch rather than failing.
		return coerce.AsTime(value), nil
	case TypeData:
		switch v := value.(type) {
		case []byte:
			return v, nil
		case string:
			return []byte(v), nil
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	return nil, &MismatchError{Type: t, Value: value}
}

// Format renders a coerced value as a MySQL literal fragment for the
// declared type. Nil renders as NULL, as does a timestamp at or before
// the epoch.
func Format(t Type, value any) (string, error) {
	coerced, err := Coerce(t, value)
	if err != nil {
		return "", err
	}
	if coerced == nil {
		return "NULL", nil
	}
	switch t {
	case TypeString, TypeText:
		return "'" + Escape(coerced.(string)) + "'", nil
	case TypeData:
		return "'" + Escape(string(coerced.([]byte))) + "'", nil
	case TypeInteger:
		return strconv.FormatInt(coerced.(int64), 10), nil
	case TypeFloat:
		return strconv.FormatFloat(coerced.(float64), 'f', -1, 64), nil
	case TypeBool:
		if coerced.(bool) {
			return "'1'", nil
		}
		return "'0'", nil
	case TypeTimestamp:
		tm := coerced.(time.Time)
		if !tm.After(coerce.Epoch()) {
			return "NULL", nil
		}
		return "'" + tm.UTC().Format("2006-01-02 15:04:05") + "'", nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownType, int(t))
}

// Escape neutralises the characters MySQL treats specially inside a
// quoted string literal.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case 0:
			b.WriteString(`\0`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case 0x1a:
			b.WriteString(`\Z`)
		case '\'':
			b.WriteString(`\'`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// QuoteIdentifier wraps a table or column name in backticks, doubling
// any backtick the name itself contains.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
