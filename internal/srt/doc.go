// Package srt normalizes free-form transcript text into valid SubRip output.
//
// Generative transcription backends are not contractually obliged to return
// clean SRT: responses arrive with conversational preambles, markdown fences,
// truncated timestamps, bare single-timestamp lines, or no timestamps at all.
// The package cleans that noise, walks an ordered chain of extraction
// strategies (well-formed SRT, timestamp ranges, single timestamps,
// unstructured lines), sanitizes the resulting cues, and renders strictly
// sequential numbered blocks.
//
// Convert never fails for malformed content; every input, including the empty
// string, produces syntactically valid non-empty SRT text.
package srt
