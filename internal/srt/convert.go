package srt

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"srtmaker/internal/logging"
)

// conversionErrorSRT is the fixed output substituted when the pipeline hits an
// unexpected internal fault. It is always syntactically valid.
var conversionErrorSRT = fmt.Sprintf("1\n%s --> %s\n%s\n\n",
	Timestamp(0), Timestamp(0).AddSeconds(defaultCueSeconds), conversionErrorText)

var orphanArrow = regexp.MustCompile(`\s*-->\s*`)

// Converter turns raw transcription responses into SRT text. It holds only a
// logger; the pattern catalog is package-level read-only state, so a single
// Converter is safe for concurrent use.
type Converter struct {
	logger *slog.Logger
}

// NewConverter constructs a Converter. A nil logger is replaced with a no-op.
func NewConverter(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Converter{logger: logging.NewComponentLogger(logger, "srt-converter")}
}

// Convert normalizes one raw transcript into SRT text. It never fails: empty
// or unparseable input yields the sentinel cue, and any internal fault is
// absorbed into a fixed placeholder document.
func (c *Converter) Convert(raw string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("transcript conversion fault, substituting placeholder",
				logging.Any("panic", r),
				logging.Int("input_length", len(raw)),
			)
			out = conversionErrorSRT
		}
	}()

	cues := c.Parse(raw)
	return Render(cues)
}

// Parse runs the cleaning, repair, extraction, and sanitize stages, returning
// the cue sequence that Render would serialize. The result is never empty.
func (c *Converter) Parse(raw string) []Cue {
	cleaned := Clean(raw)
	if strings.TrimSpace(cleaned) == "" {
		c.logger.Warn("transcript empty after cleaning, emitting sentinel cue",
			logging.Int("raw_length", len(raw)))
		return []Cue{sentinelCue()}
	}

	repaired := repairShortTimestamps(cleaned)
	cues := sanitize(extract(repaired))
	if len(cues) == 0 {
		c.logger.Warn("no cues extracted from transcript, emitting sentinel cue",
			logging.Int("cleaned_length", len(cleaned)))
		return []Cue{sentinelCue()}
	}
	c.logger.Debug("transcript parsed", logging.Int("cues", len(cues)))
	return cues
}

// sanitize drops cues whose caption is structural noise rather than dialogue:
// empty text, a stray cue number, or an embedded timestamp. Embedded stamps
// are stripped and the remainder re-tested rather than dropped outright.
func sanitize(cues []Cue) []Cue {
	kept := make([]Cue, 0, len(cues))
	for _, cue := range cues {
		text := strings.TrimSpace(cue.Text)
		if text == "" || isNumeric(text) {
			continue
		}
		if timestampPattern.MatchString(text) {
			text = rangePattern.ReplaceAllString(text, "")
			text = timestampPattern.ReplaceAllString(text, "")
			text = strings.TrimSpace(orphanArrow.ReplaceAllString(text, " "))
			if text == "" || isNumeric(text) {
				continue
			}
		}
		cue.Text = text
		kept = append(kept, cue)
	}
	return kept
}
