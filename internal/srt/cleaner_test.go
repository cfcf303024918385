package srt

import (
	"strings"
	"testing"
)

func TestCleanStripsGreetingsAndFences(t *testing.T) {
	raw := "Understood, here are the subtitles:\n```srt\n1\n00:00:00,000 --> 00:00:03,000\nHi\n\n```"
	cleaned := Clean(raw)
	if strings.Contains(strings.ToLower(cleaned), "understood") {
		t.Fatalf("expected greeting to be removed, got %q", cleaned)
	}
	if strings.Contains(cleaned, "`") {
		t.Fatalf("expected fences to be removed, got %q", cleaned)
	}
	if !strings.Contains(cleaned, "00:00:00,000 --> 00:00:03,000") {
		t.Fatalf("expected timing line to survive, got %q", cleaned)
	}
	if !strings.Contains(cleaned, "Hi") {
		t.Fatalf("expected caption to survive, got %q", cleaned)
	}
}

func TestCleanStripsSignOffs(t *testing.T) {
	raw := "1\n00:00:00,000 --> 00:00:03,000\nHi\n\nIf you'd like any revisions, just ask.\nLet me know if you need anything else!"
	cleaned := Clean(raw)
	lower := strings.ToLower(cleaned)
	if strings.Contains(lower, "revisions") || strings.Contains(lower, "let me know") {
		t.Fatalf("expected sign-off sentences to be removed, got %q", cleaned)
	}
}

func TestCleanTaggedFenceLeavesNoTag(t *testing.T) {
	cleaned := Clean("```srt\nHello\n```")
	if strings.Contains(cleaned, "srt") {
		t.Fatalf("expected language tag to be removed with the fence, got %q", cleaned)
	}
}

func TestCleanCollapsesNewlineRuns(t *testing.T) {
	cleaned := Clean("one\n\n\n\n\ntwo")
	if cleaned != "one\n\ntwo" {
		t.Fatalf("expected single blank line, got %q", cleaned)
	}
}

func TestCleanEmptyInput(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Fatalf("Clean(\"\") = %q, want empty", got)
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"Understood, here are the subtitles:\n```srt\nHello\n```",
		"1\n00:00:01,000 --> 00:00:05,000\nHello there\n\n",
		"plain text\n\n\n\nmore text",
	}
	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
