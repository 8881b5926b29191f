package probe

import (
	"encoding/json"
	"strings"
)

// Outcome tags the result of decoding a raw response.
type Outcome string

const (
	OutcomeDecoded      Outcome = "decoded"
	OutcomeUndecodable  Outcome = "undecodable"
	OutcomeUnauthorized Outcome = "unauthorized"
)

// Result is a decoded response. JSON is populated only when Outcome is
// OutcomeDecoded; Text always preserves the raw body so callers can fall back
// to text-level salvage.
type Result struct {
	Status  int
	Outcome Outcome
	JSON    any
	Text    string
}

// Decode classifies a raw response. It never fails: a body that is neither
// JSON nor JSON-looking text comes back as OutcomeUndecodable with the raw
// text preserved. 401/403 short-circuit to OutcomeUnauthorized so the caller
// can purge credentials.
func Decode(raw RawResponse) Result {
	if raw.Status == 401 || raw.Status == 403 {
		return Result{Status: raw.Status, Outcome: OutcomeUnauthorized, Text: raw.Body}
	}
	if raw.Err != nil && raw.Body == "" {
		// Network-level failure, synthetic undecodable with status 0.
		return Result{Status: raw.Status, Outcome: OutcomeUndecodable}
	}

	trimmed := strings.TrimSpace(raw.Body)
	looksJSON := strings.Contains(strings.ToLower(raw.ContentType), "json") ||
		strings.HasPrefix(trimmed, "{") ||
		strings.HasPrefix(trimmed, "[")

	if looksJSON {
		var decoded any
		if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
			return Result{Status: raw.Status, Outcome: OutcomeDecoded, JSON: decoded, Text: raw.Body}
		}
	}

	return Result{Status: raw.Status, Outcome: OutcomeUndecodable, Text: raw.Body}
}
