package instant

import (
	"testing"
	"time"
)

func TestParseEpochSecondsAndMillisAgree(t *testing.T) {
	secs, ok1 := Parse(float64(1700000000))
	millis, ok2 := Parse(float64(1700000000000))
	if !ok1 || !ok2 {
		t.Fatal("Parse() failed on epoch values")
	}
	if !secs.Equal(millis) {
		t.Errorf("seconds %v and milliseconds %v resolve to different instants", secs, millis)
	}
}

func TestParseDigitStrings(t *testing.T) {
	secs, ok1 := Parse("1700000000")    // 10 digits -> seconds
	millis, ok2 := Parse("1700000000000") // 13 digits -> milliseconds
	if !ok1 || !ok2 {
		t.Fatal("Parse() failed on digit strings")
	}
	if !secs.Equal(millis) {
		t.Errorf("digit-string seconds %v and millis %v disagree", secs, millis)
	}
}

func TestParseISOString(t *testing.T) {
	got, ok := Parse("2024-03-01T10:00:00Z")
	if !ok {
		t.Fatal("Parse() failed on ISO string")
	}
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestParseLooseDateString(t *testing.T) {
	got, ok := Parse("March 1, 2024 10:00am")
	if !ok {
		t.Fatal("Parse() failed on loose date string")
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 1 {
		t.Errorf("Parse() = %v, want March 1 2024", got)
	}
}

func TestParseObjectAliases(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
	}{
		{"createdAt", map[string]any{"createdAt": "2024-03-01T10:00:00Z"}},
		{"created_at", map[string]any{"created_at": "2024-03-01T10:00:00Z"}},
		{"timestamp epoch", map[string]any{"timestamp": float64(1709287200)}},
		{"generatedAt", map[string]any{"generatedAt": "2024-03-01T10:00:00Z", "noise": "hello"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Parse(tt.in); !ok {
				t.Errorf("Parse(%v) found no instant", tt.in)
			}
		})
	}
}

func TestParseObjectAliasPrecedence(t *testing.T) {
	in := map[string]any{
		"createdAt": "2024-01-01T00:00:00Z",
		"date":      "2030-12-31T00:00:00Z",
	}
	got, ok := Parse(in)
	if !ok || got.Year() != 2024 {
		t.Errorf("Parse() = %v, %v; want createdAt to win over date", got, ok)
	}
}

func TestParseObjectNonAliasFallback(t *testing.T) {
	in := map[string]any{"when": "2024-03-01T10:00:00Z", "flag": true}
	if _, ok := Parse(in); !ok {
		t.Error("Parse() missed a parseable non-alias value")
	}
}

func TestParseMisses(t *testing.T) {
	for _, in := range []any{nil, "", "not a date", true, map[string]any{"a": true}} {
		if _, ok := Parse(in); ok {
			t.Errorf("Parse(%v) = ok, want miss", in)
		}
	}
}

func TestParseEpochZeroAndNegative(t *testing.T) {
	epoch := time.Unix(0, 0).UTC()

	got, ok := Parse(float64(0))
	if !ok || !got.Equal(epoch) {
		t.Errorf("Parse(0) = %v, %v; want the epoch itself", got, ok)
	}

	got, ok = Parse("0")
	if !ok || !got.Equal(epoch) {
		t.Errorf("Parse(\"0\") = %v, %v; want the epoch itself", got, ok)
	}

	// Negative epochs are pre-1970 instants in milliseconds.
	got, ok = Parse(float64(-5000))
	if !ok || !got.Before(epoch) {
		t.Errorf("Parse(-5000) = %v, %v; want an instant before the epoch", got, ok)
	}
	if got.Unix() != -5 {
		t.Errorf("Parse(-5000).Unix() = %d, want -5", got.Unix())
	}
}

func TestFormatUTCRoundTrip(t *testing.T) {
	got, ok := Parse("2024-03-01T10:00:00Z")
	if !ok {
		t.Fatal("Parse() failed")
	}
	if s := FormatUTC(got); s != "01 Mar 2024, 10:00:00 UTC" {
		t.Errorf("FormatUTC() = %q, want %q", s, "01 Mar 2024, 10:00:00 UTC")
	}
}

func TestFormatUTCNormalizesZone(t *testing.T) {
	in := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("plus2", 2*3600))
	if s := FormatUTC(in); s != "01 Mar 2024, 10:00:00 UTC" {
		t.Errorf("FormatUTC() = %q, want zone-normalized rendering", s)
	}
}

func TestFormatMaybeUTC(t *testing.T) {
	if s := FormatMaybeUTC(nil); s != "No date" {
		t.Errorf("FormatMaybeUTC(nil) = %q, want No date", s)
	}
	if s := FormatMaybeUTC("garbage value"); s != "garbage value" {
		t.Errorf("FormatMaybeUTC(garbage) = %q, want raw text preserved", s)
	}
}
