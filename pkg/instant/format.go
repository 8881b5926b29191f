package instant

import "time"

// utcLayout is the fixed feed format: "02 Mar 2024, 10:00:00 UTC". Feeds are
// compared across timezones, so the rendering is bit-exact and UTC-pinned.
const utcLayout = "02 Jan 2006, 15:04:05"

// FormatUTC renders t in the fixed UTC feed format.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(utcLayout) + " UTC"
}

// FormatMaybeUTC renders a raw value through Parse, falling back to the raw
// text (or "No date") when nothing parseable is found. Mirrors the display
// rule: absence is a string, never an error.
func FormatMaybeUTC(raw any) string {
	if t, ok := Parse(raw); ok {
		return FormatUTC(t)
	}
	if s, isStr := raw.(string); isStr && s != "" {
		return s
	}
	return "No date"
}
