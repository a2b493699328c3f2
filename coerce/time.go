package coerce

import (
	"strconv"
	"strings"
	"time"
)

// timeLayouts are tried in order when parsing a date/time literal.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02 Jan 2006 15:04:05",
	"02 Jan 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// AsTime converts any value to a UTC instant. Nil, empty strings and
// unparseable literals all become the epoch; numeric input is read as a
// Unix timestamp. It never fails.
func AsTime(value any) time.Time {
	return AsTimeIn(value, time.UTC)
}

// AsTimeIn converts like AsTime but parses naive literals in the given
// location and returns the result in that location. An already-typed
// time is converted losslessly through its absolute instant.
func AsTimeIn(value any, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	switch v := value.(type) {
	case nil:
		return epoch.In(loc)
	case time.Time:
		return v.In(loc)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return time.Unix(AsInt64(v), 0).In(loc)
	case float32, float64:
		return time.Unix(int64(AsFloat(v)), 0).In(loc)
	case string:
		return parseTime(v, loc)
	case []byte:
		return parseTime(string(v), loc)
	default:
		return epoch.In(loc)
	}
}

// HasTime reports whether value holds an instant strictly after the
// epoch, i.e. a timestamp that has actually been set.
func HasTime(value any) bool {
	return AsTime(value).After(epoch)
}

func parseTime(s string, loc *time.Location) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return epoch.In(loc)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(n, 0).In(loc)
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return epoch.In(loc)
}
