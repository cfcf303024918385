package srt

import (
	"regexp"
	"strconv"
	"strings"
)

// greetingPatterns catalogs the conversational phrasings the transcription
// model tends to wrap around its answer. Matches are line-anchored or whole
// extraneous sentences; a caption that genuinely opens a line with one of
// these phrasings is stripped too, which is an accepted limitation.
var greetingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^(?:understood|okay|sure|certainly|of course)[,.!:]?\s.*\b(?:subtitles?|captions?)\b.*$`),
	regexp.MustCompile(`(?im)^here (?:are|is) the (?:requested )?subtitles?\b.*$`),
	regexp.MustCompile(`(?im)^this is the subtitle file for (?:this|the) video\.?\s*$`),
	regexp.MustCompile(`(?im)^i(?:'ve| have) (?:generated|created|transcribed) the .*\b(?:subtitles?|captions?)\b.*$`),
	regexp.MustCompile(`(?im)^.*if you(?:'d| would)? like any (?:revisions?|changes|adjustments?).*$`),
	regexp.MustCompile(`(?im)^.*let me know if you (?:need|have|want|would like).*$`),
	regexp.MustCompile(`(?im)^.*(?:hope|glad) (?:you|the|these).*\b(?:subtitles?|captions?)\b.*$`),
	regexp.MustCompile(`(?im)^.*feel free to (?:ask|request).*$`),
}

// markdownPatterns removes code-fence delimiters. Order matters: the tagged
// fence is stripped before the bare one so "```srt" never leaves "srt" behind.
var markdownPatterns = []*regexp.Regexp{
	regexp.MustCompile("```[a-zA-Z]+"),
	regexp.MustCompile("```"),
	regexp.MustCompile("`{1,3}"),
}

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Clean strips conversational preambles, sign-offs, and markdown fences from
// a raw transcription response and collapses runs of blank lines. It is a
// pure function and idempotent: cleaning already-clean text changes nothing.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	for _, pattern := range greetingPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	for _, pattern := range markdownPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	return excessNewlines.ReplaceAllString(text, "\n\n")
}

func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}
