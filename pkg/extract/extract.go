// Package extract recovers scalars and collections from decoded JSON of
// unknown shape. Every extractor is a total, exhaustive match over the small
// set of shapes encoding/json can produce, with an explicit, testable
// fallback order: priority keys first, blind recursion last.
package extract

import "sort"

// Kind tags the shape of a decoded JSON value.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	KindArray
	KindObject
)

// KindOf classifies a value decoded by encoding/json into an any.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case float64:
		return KindNumber
	case string:
		return KindString
	case bool:
		return KindBool
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		// json.Decoder with UseNumber, or hand-built values in tests.
		switch v.(type) {
		case int, int64, float32:
			return KindNumber
		}
		return KindNull
	}
}

// sortedKeys returns the object's keys in sorted order. Go map iteration is
// randomized, so blind-recursion fallbacks walk keys sorted to keep the
// heuristic deterministic.
func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
