// Package instant resolves the many timestamp encodings loose APIs emit
// (ISO strings, epoch seconds, epoch milliseconds, aliased object fields)
// into a single canonical time.Time.
package instant

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// fieldAliases are the object keys a timestamp hides under, probed in order.
var fieldAliases = []string{
	"createdAt",
	"created_at",
	"created",
	"date",
	"timestamp",
	"generatedAt",
	"time",
	"isoDate",
	"Timestamp",
	"createdOn",
}

// epochMillisCutoff separates epoch seconds from epoch milliseconds. Positive
// values below it (~5138 AD in seconds, ~1973 in millis) are treated as
// seconds.
const epochMillisCutoff = 1e11

var digitsOnlyRe = regexp.MustCompile(`^\d+$`)

// Parse resolves input to a canonical instant. Returns (zero, false) when
// nothing parseable is found; it never panics and never guesses wildly (a
// plain year-like small number still parses, as seconds since epoch).
func Parse(input any) (time.Time, bool) {
	switch v := input.(type) {
	case nil:
		return time.Time{}, false

	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true

	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true

	case float64:
		return fromEpoch(v)
	case int:
		return fromEpoch(float64(v))
	case int64:
		return fromEpoch(float64(v))

	case string:
		return parseString(v)

	case map[string]any:
		for _, alias := range fieldAliases {
			if inner, present := v[alias]; present && inner != nil {
				if t, ok := Parse(inner); ok {
					return t, true
				}
			}
		}
		// Last resort: any primitive value, in sorted key order for
		// deterministic behavior.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch v[k].(type) {
			case string, float64, int, int64, time.Time:
				if t, ok := Parse(v[k]); ok {
					return t, true
				}
			}
		}
		return time.Time{}, false

	default:
		return time.Time{}, false
	}
}

// fromEpoch treats positive values below the cutoff as seconds and everything
// else as milliseconds. Zero and negative epochs are valid pre-1970 instants.
func fromEpoch(n float64) (time.Time, bool) {
	if math.IsNaN(n) || n >= math.MaxInt64 || n <= math.MinInt64 {
		return time.Time{}, false
	}
	if n > 0 && n < epochMillisCutoff {
		return time.UnixMilli(int64(n * 1000)).UTC(), true
	}
	return time.UnixMilli(int64(n)).UTC(), true
}

func parseString(s string) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, false
	}

	if digitsOnlyRe.MatchString(trimmed) {
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		// Digit strings of epoch length: <= 10 digits means seconds. "0" is
		// the epoch itself, in milliseconds.
		if n > 0 && len(trimmed) <= 10 {
			return time.Unix(n, 0).UTC(), true
		}
		return time.UnixMilli(n).UTC(), true
	}

	t, err := dateparse.ParseAny(trimmed)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
