package classify

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Language guesses the ISO-639-1 code of text, or "" when the text is too
// short or ambiguous to call. The detector is built once; the language set is
// limited to keep model loading cheap.
func Language(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 8 {
		return ""
	}

	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(
				lingua.English,
				lingua.Spanish,
				lingua.French,
				lingua.German,
				lingua.Portuguese,
				lingua.Italian,
			).
			Build()
	})

	lang, ok := detector.DetectLanguageOf(trimmed)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
