package language

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// wordForms maps full language names to ISO 639-1 codes so users can write
// "korean" instead of "ko". Codes and BCP-47 tags are handled by language.Parse.
var wordForms = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
	"vietnamese": "vi",
	"thai":       "th",
	"turkish":    "tr",
	"indonesian": "id",
}

// Resolve normalizes input like "korean", "ko", or "ko-KR" to a BCP-47 tag.
func Resolve(input string) (language.Tag, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return language.Und, fmt.Errorf("language: empty input")
	}
	if code, ok := wordForms[trimmed]; ok {
		trimmed = code
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return language.Und, fmt.Errorf("language: unrecognized %q: %w", input, err)
	}
	return tag, nil
}

// DisplayName returns the English name for a resolved tag ("Korean" for ko).
func DisplayName(tag language.Tag) string {
	name := display.English.Languages().Name(tag)
	if name == "" {
		return tag.String()
	}
	return name
}
