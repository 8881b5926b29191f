package classify

import (
	"testing"

	"statboard/models"
)

func TestRawLabelDirectFields(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		want   string
	}{
		{"explicit type", map[string]any{"type": "Blog Post"}, "Blog Post"},
		{"contentType", map[string]any{"contentType": "Email"}, "Email"},
		{"snake case", map[string]any{"content_type": "Ad Copy"}, "Ad Copy"},
		{"type wins over title", map[string]any{"type": "Email", "title": "my blog about ads"}, "Email"},
		{"numeric type used verbatim", map[string]any{"type": float64(3)}, "3"},
		{"trailing-zero number kept verbatim", map[string]any{"type": float64(30)}, "30"},
		{"fractional number kept verbatim", map[string]any{"type": float64(2.5)}, "2.5"},
		{"nested meta.type", map[string]any{"meta": map[string]any{"type": "Landing Page"}}, "Landing Page"},
		{"object type field", map[string]any{"category": map[string]any{"name": "Social Post"}}, "Social Post"},
		{"whitespace-only type skipped", map[string]any{"type": "   ", "title": "quarterly blog roundup"}, "Blog Post"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RawLabel(tt.record); got != tt.want {
				t.Errorf("RawLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRawLabelTextRules(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		want   string
	}{
		{"blog phrasing", map[string]any{"title": "10 Proven Strategies for SEO Blog Growth"}, "Blog Post"},
		{"email phrasing", map[string]any{"prompt": "Write a professional email to a customer"}, "Email"},
		{"ad phrasing", map[string]any{"title": "Facebook ad for spring sale"}, "Ad Copy"},
		{"social phrasing", map[string]any{"summary": "Instagram caption with hashtags"}, "Social Post"},
		{"tweet phrasing", map[string]any{"text": "thread about golang tips"}, "Tweet"},
		{"landing phrasing", map[string]any{"body": "hero section with a strong CTA"}, "Landing Page"},
		{"product phrasing", map[string]any{"prompt": "product description for wireless earbuds"}, "Product Description"},
		{"press phrasing", map[string]any{"title": "press release headline draft"}, "Press Release"},
		{"email rule outranks ad rule", map[string]any{"title": "email copy for our google ad campaign"}, "Email"},
		{"no signal", map[string]any{"title": "untitled draft"}, ""},
		{"empty record", map[string]any{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RawLabel(tt.record); got != tt.want {
				t.Errorf("RawLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRawLabelSubstringFallbacks(t *testing.T) {
	// "myblog" defeats the \b-anchored rule but the substring fallback catches it.
	got := RawLabel(map[string]any{"title": "myblogdraft v2"})
	if got != "Blog Post" {
		t.Errorf("RawLabel() = %q, want substring fallback Blog Post", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Blog Post", models.LabelBlogPost},
		{"blog", models.LabelBlogPost},
		{"Social Post", models.LabelSocialMedia},
		{"Email", models.LabelEmail},
		{"Ad Copy", models.LabelAdCopy},
		{"product description", models.LabelProduct},
		{"Landing Page", models.LabelLanding},
		{"string", models.LabelGeneral},
		{"unknown", models.LabelGeneral},
		{"null", models.LabelGeneral},
		{"", models.LabelGeneral},
		{"Tweet", models.LabelGeneral},
		{"completely novel", models.LabelGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassifyAlwaysInTaxonomy(t *testing.T) {
	records := []map[string]any{
		nil,
		{},
		{"type": "garbage-value-9000"},
		{"title": "press release headline draft"},
		{"title": "10 Proven Strategies for SEO Blog Growth"},
		{"flag": true, "n": float64(1)},
	}
	for _, r := range records {
		got := Classify(r)
		if !models.InTaxonomy(got) {
			t.Errorf("Classify(%v) = %q, not a taxonomy member", r, got)
		}
	}
}

func TestLanguageShortTextSkipped(t *testing.T) {
	if got := Language("hi"); got != "" {
		t.Errorf("Language(short) = %q, want \"\"", got)
	}
}

func TestLanguageEnglish(t *testing.T) {
	got := Language("Ten proven strategies for growing your blog audience this year")
	if got != "en" {
		t.Errorf("Language() = %q, want en", got)
	}
}
