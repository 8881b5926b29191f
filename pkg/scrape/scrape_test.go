package scrape

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Maintenance window</title></head>
<body>
<script>var ignored = 1;</script>
<h1>Service notice</h1>
<p>Currently serving 250 active users.</p>
</body>
</html>`

func TestLooksHTML(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"doctype", samplePage, true},
		{"bare html tag", "<html><body>x</body></html>", true},
		{"json", `{"count": 1}`, false},
		{"plain text", "just words", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksHTML(tt.body); got != tt.want {
				t.Errorf("LooksHTML() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextStripsMarkup(t *testing.T) {
	got := Text(samplePage)
	if got == "" {
		t.Fatal("Text() returned empty")
	}
	if want := "250 active users"; !strings.Contains(got, want) {
		t.Errorf("Text() = %q, want it to contain %q", got, want)
	}
	if strings.Contains(got, "var ignored") {
		t.Errorf("Text() = %q, script content not stripped", got)
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("Text() = %q, tags not stripped", got)
	}
}

func TestPageRecoversTitle(t *testing.T) {
	rec, ok := Page("https://example.com/status", samplePage)
	if !ok {
		t.Fatal("Page() recovered nothing")
	}
	if rec.Title == "" {
		t.Error("Page() returned empty title")
	}
}

func TestPageMissOnGarbage(t *testing.T) {
	if _, ok := Page("https://example.com", "<html><body></body></html>"); ok {
		t.Error("Page() recovered a record from a titleless page")
	}
}
