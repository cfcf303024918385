package srt

import (
	"regexp"
	"strings"
)

// blockHeaderPattern matches the index + timing header that opens a
// well-formed SRT block.
var blockHeaderPattern = regexp.MustCompile(`(?m)^\s*\d+\s*\n\s*(\d{2,}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2,}:\d{2}:\d{2},\d{3})[^\n]*`)

// A strategy inspects cleaned transcript text and returns extracted cues, or
// nil when its shape is not present. Strategies run in precedence order and
// the first non-empty result wins.
type strategy func(text string) []Cue

var strategies = []strategy{
	parseWellFormed,
	parseRangeLines,
	parseSingleStamps,
	parseUnstructured,
}

// extract walks the strategy chain over cleaned, repaired text.
func extract(text string) []Cue {
	for _, parse := range strategies {
		if cues := parse(text); len(cues) > 0 {
			return cues
		}
	}
	return nil
}

// parseWellFormed handles text that already follows the canonical SRT block
// grammar. Blocks whose caption is empty, purely numeric, or contains a bare
// timestamp (a sign the block boundary was mis-detected) are discarded; if
// nothing valid remains the chain falls through to the range strategy.
func parseWellFormed(text string) []Cue {
	headers := blockHeaderPattern.FindAllStringSubmatchIndex(text, -1)
	if len(headers) == 0 {
		return nil
	}
	cues := make([]Cue, 0, len(headers))
	for i, header := range headers {
		start, err := ParseTimestamp(text[header[2]:header[3]])
		if err != nil {
			continue
		}
		end, err := ParseTimestamp(text[header[4]:header[5]])
		if err != nil {
			continue
		}
		bodyStart := header[1]
		bodyEnd := len(text)
		if i+1 < len(headers) {
			bodyEnd = headers[i+1][0]
		}
		body := strings.TrimSpace(text[bodyStart:bodyEnd])
		if body == "" || isNumeric(body) || timestampPattern.MatchString(body) {
			continue
		}
		cues = append(cues, Cue{Start: start, End: end, Text: body})
	}
	return cues
}

// parseRangeLines handles "start --> end caption" occurrences without index
// lines. The caption is everything from the end of the range match to the
// next newline; a caption that is only digits is a stray cue number.
func parseRangeLines(text string) []Cue {
	matches := rangePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	cues := make([]Cue, 0, len(matches))
	for _, match := range matches {
		start, err := ParseTimestamp(text[match[2]:match[3]])
		if err != nil {
			continue
		}
		end, err := ParseTimestamp(text[match[4]:match[5]])
		if err != nil {
			continue
		}
		lineEnd := strings.IndexByte(text[match[1]:], '\n')
		if lineEnd == -1 {
			lineEnd = len(text) - match[1]
		}
		caption := strings.TrimSpace(text[match[1] : match[1]+lineEnd])
		if caption == "" || isNumeric(caption) {
			continue
		}
		cues = append(cues, Cue{Start: start, End: end, Text: caption})
	}
	return cues
}

// parseSingleStamps handles lines that open with a lone timestamp followed by
// caption text. Text may continue on subsequent lines until the next stamp.
// Each cue ends where the next one starts; the final cue gets a synthetic
// ten-second duration.
func parseSingleStamps(text string) []Cue {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cues []Cue
	var current *Cue
	var pending []string

	flush := func(next Timestamp, synthetic bool) {
		if current == nil {
			return
		}
		caption := strings.TrimSpace(strings.Join(pending, " "))
		if caption != "" {
			end := next
			if synthetic {
				end = current.Start.AddSeconds(defaultCueSeconds)
			}
			cues = append(cues, Cue{Start: current.Start, End: end, Text: caption})
		}
		current = nil
		pending = nil
	}

	for _, line := range lines {
		loc := timestampPattern.FindStringIndex(line)
		if loc == nil {
			if current != nil && strings.TrimSpace(line) != "" {
				pending = append(pending, strings.TrimSpace(line))
			}
			continue
		}
		start, err := ParseTimestamp(line[loc[0]:loc[1]])
		if err != nil {
			continue
		}
		flush(start, false)
		current = &Cue{Start: start}
		if rest := strings.TrimSpace(line[loc[1]:]); rest != "" {
			pending = append(pending, rest)
		}
	}
	flush(0, true)
	return cues
}

// parseUnstructured handles text with no recognizable timestamps: each
// non-blank line becomes a back-to-back ten-second cue starting at zero. When
// line splitting yields nothing, the whole text becomes a single cue.
func parseUnstructured(text string) []Cue {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	var cues []Cue
	cursor := Timestamp(0)
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		end := cursor.AddSeconds(defaultCueSeconds)
		cues = append(cues, Cue{Start: cursor, End: end, Text: line})
		cursor = end
	}
	if len(cues) == 0 {
		cues = append(cues, Cue{
			Start: 0,
			End:   Timestamp(0).AddSeconds(defaultCueSeconds),
			Text:  trimmed,
		})
	}
	return cues
}
