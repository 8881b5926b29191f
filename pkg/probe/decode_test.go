package probe

import (
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		raw         RawResponse
		wantOutcome Outcome
	}{
		{
			name:        "JSON object with JSON content type",
			raw:         RawResponse{Status: 200, ContentType: "application/json", Body: `{"count": 42}`},
			wantOutcome: OutcomeDecoded,
		},
		{
			name:        "JSON array without content type",
			raw:         RawResponse{Status: 200, ContentType: "text/plain", Body: `[1, 2, 3]`},
			wantOutcome: OutcomeDecoded,
		},
		{
			name:        "bare number with JSON content type",
			raw:         RawResponse{Status: 200, ContentType: "application/json; charset=utf-8", Body: `17`},
			wantOutcome: OutcomeDecoded,
		},
		{
			name:        "JSON-looking but malformed",
			raw:         RawResponse{Status: 200, ContentType: "text/html", Body: `{"count": `},
			wantOutcome: OutcomeUndecodable,
		},
		{
			name:        "opaque text",
			raw:         RawResponse{Status: 200, ContentType: "text/plain", Body: "total users: 99"},
			wantOutcome: OutcomeUndecodable,
		},
		{
			name:        "401 is unauthorized",
			raw:         RawResponse{Status: 401, ContentType: "application/json", Body: `{"error":"nope"}`},
			wantOutcome: OutcomeUnauthorized,
		},
		{
			name:        "403 is unauthorized",
			raw:         RawResponse{Status: 403, Body: ""},
			wantOutcome: OutcomeUnauthorized,
		},
		{
			name:        "network failure is synthetic undecodable",
			raw:         RawResponse{Status: 0, Err: errors.New("connection refused")},
			wantOutcome: OutcomeUndecodable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.raw)
			if got.Outcome != tt.wantOutcome {
				t.Errorf("Decode() outcome = %q, want %q", got.Outcome, tt.wantOutcome)
			}
			if tt.wantOutcome == OutcomeDecoded && got.JSON == nil {
				t.Error("Decode() decoded outcome with nil JSON")
			}
		})
	}
}

func TestDecodePreservesRawText(t *testing.T) {
	raw := RawResponse{Status: 200, ContentType: "text/plain", Body: "active: 12 users"}
	got := Decode(raw)
	if got.Outcome != OutcomeUndecodable {
		t.Fatalf("Decode() outcome = %q, want undecodable", got.Outcome)
	}
	if got.Text != raw.Body {
		t.Errorf("Decode() text = %q, want raw body preserved", got.Text)
	}
}

func TestDecodeNumberValue(t *testing.T) {
	got := Decode(RawResponse{Status: 200, ContentType: "application/json", Body: `42`})
	n, ok := got.JSON.(float64)
	if !ok || n != 42 {
		t.Errorf("Decode() JSON = %v, want 42", got.JSON)
	}
}
