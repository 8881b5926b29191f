// Package classify infers a coarse content category for content-like rows
// whose type field may be missing, misnamed, or a placeholder. Explicit
// type-like fields win; free text falls through an ordered regex rule table;
// the result is always canonicalized into the closed taxonomy.
package classify

import (
	"fmt"
	"strconv"
	"strings"

	"statboard/models"
)

// typeFields are the explicit type-like fields, probed in order. A dotted
// name probes one level into a nested object.
var typeFields = []string{
	"type",
	"contentType",
	"content_type",
	"template",
	"templateName",
	"kind",
	"category",
	"label",
	"format",
	"meta.type",
	"metadata.type",
	"metadata.category",
	"promptType",
	"generatedType",
	"typeName",
}

// textFields are the free-text fields concatenated for rule matching.
var textFields = []string{
	"title",
	"name",
	"prompt",
	"summary",
	"text",
	"body",
	"message",
	"instructions",
	"templateName",
	"template",
}

// nestedNameKeys recover a usable label from an object-valued type field.
var nestedNameKeys = []string{"name", "title", "type", "label", "category"}

// RawLabel extracts the best-effort raw category label from a record, or ""
// when nothing type-like or text-classifiable exists. The raw label is not
// yet a taxonomy member; pass it through Normalize.
func RawLabel(record map[string]any) string {
	if record == nil {
		return ""
	}

	for _, field := range typeFields {
		if label := directLabel(lookup(record, field)); label != "" {
			return label
		}
	}

	var parts []string
	for _, field := range textFields {
		if s, ok := record[field].(string); ok && s != "" {
			parts = append(parts, strings.ToLower(s))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	text := strings.Join(parts, " || ")

	for _, r := range textRules {
		if r.pattern.MatchString(text) {
			return r.label
		}
	}

	// Broad substring fallbacks before giving up.
	switch {
	case strings.Contains(text, "blog"):
		return "Blog Post"
	case strings.Contains(text, "email"):
		return "Email"
	case strings.Contains(text, "ad") && strings.Contains(text, "copy"):
		return "Ad Copy"
	case strings.Contains(text, "instagram"), strings.Contains(text, "facebook"), strings.Contains(text, "social"):
		return "Social Post"
	}
	return ""
}

// Normalize canonicalizes a raw label into the closed taxonomy. Placeholder
// values serializers leak ("string", "unknown", "null") and anything
// unrecognized map to General; the function never fails.
func Normalize(raw string) string {
	if raw == "" {
		return models.LabelGeneral
	}
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" || t == "string" || t == "unknown" || t == "null" {
		return models.LabelGeneral
	}

	switch {
	case strings.Contains(t, "blog"):
		return models.LabelBlogPost
	case strings.Contains(t, "social"):
		return models.LabelSocialMedia
	case strings.Contains(t, "email"):
		return models.LabelEmail
	case strings.Contains(t, "ad"):
		return models.LabelAdCopy
	case strings.Contains(t, "product"):
		return models.LabelProduct
	case strings.Contains(t, "landing"):
		return models.LabelLanding
	}
	return models.LabelGeneral
}

// Classify is RawLabel followed by Normalize: record in, taxonomy member out.
func Classify(record map[string]any) string {
	return Normalize(RawLabel(record))
}

// lookup resolves a possibly dotted field name against a record.
func lookup(record map[string]any, field string) any {
	if i := strings.IndexByte(field, '.'); i >= 0 {
		outer, inner := field[:i], field[i+1:]
		if nested, ok := record[outer].(map[string]any); ok {
			return nested[inner]
		}
		return nil
	}
	return record[field]
}

// directLabel turns an explicit type-like value into a raw label, if usable.
func directLabel(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return fmt.Sprintf("%d", val)
	case map[string]any:
		for _, k := range nestedNameKeys {
			if s, ok := val[k].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
