package srt

import (
	"fmt"
	"strings"
)

// Render serializes cues to SRT text: a 1-based sequential index line, the
// timing line, the caption, and one blank line per block, in original order
// with no reordering or deduplication. Cues with Start > End are passed
// through unchanged; construction keeps synthetic ends monotonic, so an
// inversion can only restate what the source text explicitly claimed.
func Render(cues []Cue) string {
	if len(cues) == 0 {
		cues = []Cue{sentinelCue()}
	}
	var b strings.Builder
	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", i+1, cue.Start, cue.End, cue.Text)
	}
	return b.String()
}
