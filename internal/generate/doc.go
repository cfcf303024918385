// Package generate orchestrates the full video-to-subtitle pipeline:
// preflight checks, transcription, SRT normalization, the file sink, and the
// history record. A lock file in the staging directory serializes generations
// on the same machine.
package generate
