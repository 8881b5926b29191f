package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// numberKeys are checked before any blind recursion. Priority keys avoid
// false positives from deeply nested unrelated counters; order matters.
var numberKeys = []string{
	"count",
	"total",
	"value",
	"size",
	"users",
	"length",
	"data",
	"totalUsers",
	"total_users",
	"countUsers",
	"activeUsers",
	"active_users",
}

var (
	pureNumberRe     = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	embeddedNumberRe = regexp.MustCompile(`-?\d+(\.\d+)?`)
)

// Number searches v for the one number that matters. Returns (0, false) when
// no plausible number exists under any heuristic.
//
// Order, first match wins: a number is itself; a string is parsed whole, then
// scanned for an embedded numeric substring; an array yields its length (a
// list answers "how many" when a scalar was requested); an object is probed
// through the priority keys, then every key recursively in sorted order.
func Number(v any) (float64, bool) {
	switch KindOf(v) {
	case KindNumber:
		return asFloat(v)

	case KindString:
		s := strings.TrimSpace(v.(string))
		if pureNumberRe.MatchString(s) {
			n, err := strconv.ParseFloat(s, 64)
			if err == nil {
				return n, true
			}
		}
		if m := embeddedNumberRe.FindString(s); m != "" {
			n, err := strconv.ParseFloat(m, 64)
			if err == nil {
				return n, true
			}
		}
		return 0, false

	case KindArray:
		return float64(len(v.([]any))), true

	case KindObject:
		obj := v.(map[string]any)
		for _, k := range numberKeys {
			if inner, present := obj[k]; present && inner != nil {
				if n, ok := Number(inner); ok {
					return n, true
				}
			}
		}
		for _, k := range sortedKeys(obj) {
			if n, ok := Number(obj[k]); ok {
				return n, true
			}
		}
		return 0, false

	default:
		return 0, false
	}
}
