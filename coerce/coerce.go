// Package coerce converts loosely-typed input into guaranteed primitive
// values. Every AsX helper is best-effort and never fails for primitive
// input; only asking to stringify or number a composite value it cannot
// handle is treated as a programmer mistake and panics.
package coerce

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	grouped       = message.NewPrinter(language.English)
	markupPattern = regexp.MustCompile(`<[^>]*>`)
	numberPrefix  = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

var epoch = time.Unix(0, 0).UTC()

// Epoch returns the Unix epoch instant in UTC. It is the canonical
// "unset" value for timestamps throughout the library.
func Epoch() time.Time {
	return epoch
}

// AsString converts any primitive value to a string. Nil becomes the
// empty string, floats are rendered with four fixed decimals, integers
// are thousands-grouped and booleans become "True"/"False". Values
// implementing fmt.Stringer are honoured; any other composite panics.
func AsString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		if v {
			return "True"
		}
		return "False"
	case float32:
		return strconv.FormatFloat(float64(v), 'f', 4, 64)
	case float64:
		return strconv.FormatFloat(v, 'f', 4, 64)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return grouped.Sprintf("%d", v)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		panic(fmt.Sprintf("coerce: cannot convert %T to string", value))
	}
}

// AsStringSafe converts like AsString but trims surrounding whitespace
// and, when stripMarkup is true, removes any <...> delimited markup.
func AsStringSafe(value any, stripMarkup bool) string {
	s := AsString(value)
	if stripMarkup {
		s = markupPattern.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// AsInt64 converts any primitive value to an integer. Strings are parsed
// permissively: a leading numeric prefix is used and any trailing
// garbage is ignored, so "12abc" yields 12 and "nope" yields 0.
func AsInt64(value any) int64 {
	switch v := value.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		return int64(numericPrefix(v))
	case []byte:
		return int64(numericPrefix(string(v)))
	case time.Time:
		return v.Unix()
	default:
		panic(fmt.Sprintf("coerce: cannot convert %T to integer", value))
	}
}

// AsInt is AsInt64 narrowed to the platform int.
func AsInt(value any) int {
	return int(AsInt64(value))
}

// AsFloat converts any primitive value to a float64, with the same
// permissive string parsing as AsInt64.
func AsFloat(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case bool:
		if v {
			return 1
		}
		return 0
	case float32:
		return float64(v)
	case float64:
		return v
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return float64(AsInt64(v))
	case string:
		return numericPrefix(v)
	case []byte:
		return numericPrefix(string(v))
	default:
		panic(fmt.Sprintf("coerce: cannot convert %T to float", value))
	}
}

// AsBool converts any value to a boolean and never fails. Strings are
// true only for "1", "true", "on" and "yes" (case-insensitive); every
// other string, and every unsupported type, is false.
func AsBool(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return boolString(v)
	case []byte:
		return boolString(string(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return AsInt64(v) != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

func boolString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// numericPrefix parses the leading numeric portion of a string,
// returning 0 when no such prefix exists.
func numericPrefix(s string) float64 {
	s = strings.TrimSpace(s)
	match := numberPrefix.FindString(s)
	if match == "" {
		return 0
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return f
}
