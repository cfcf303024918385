package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"srtmaker/internal/config"
	"srtmaker/internal/history"
)

type fakeTranscriber struct {
	transcript string
	err        error
	calls      int
	language   string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _, languageName string) (string, error) {
	f.calls++
	f.language = languageName
	if f.err != nil {
		return "", f.err
	}
	return f.transcript, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(root, "out")
	cfg.Paths.StagingDir = filepath.Join(root, "staging")
	cfg.Paths.HistoryDB = filepath.Join(root, "history.db")
	cfg.Subtitles.Language = "korean"
	return &cfg
}

func writeVideo(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "lecture.mp4")
	if err := os.WriteFile(path, []byte("not really a video"), 0o644); err != nil {
		t.Fatalf("write video: %v", err)
	}
	return path
}

func TestRunProducesSubtitleFile(t *testing.T) {
	cfg := testConfig(t)
	video := writeVideo(t, t.TempDir())
	client := &fakeTranscriber{transcript: "1\n00:00:01,000 --> 00:00:04,000\nHello there\n"}

	gen, err := New(cfg, client, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := gen.Run(context.Background(), video, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.RequestID == "" {
		t.Fatal("expected a request id")
	}
	want := filepath.Join(cfg.Paths.OutputDir, "lecture.srt")
	if result.OutputPath != want {
		t.Fatalf("output path = %q, want %q", result.OutputPath, want)
	}
	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "Hello there") {
		t.Fatalf("output missing caption text: %q", data)
	}
	if result.CueCount != 1 {
		t.Fatalf("cue count = %d, want 1", result.CueCount)
	}
	if result.DurationSeconds != 4 {
		t.Fatalf("duration = %v, want 4", result.DurationSeconds)
	}
	if client.language != "Korean" {
		t.Fatalf("language name = %q, want Korean", client.language)
	}
}

func TestRunArchivesRawTranscript(t *testing.T) {
	cfg := testConfig(t)
	video := writeVideo(t, t.TempDir())
	client := &fakeTranscriber{transcript: "plain words with no timing"}

	gen, err := New(cfg, client, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := gen.Run(context.Background(), video, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.TranscriptPath == "" {
		t.Fatal("expected transcript path")
	}
	data, err := os.ReadFile(result.TranscriptPath)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if string(data) != client.transcript {
		t.Fatalf("archived transcript = %q", data)
	}
}

func TestRunExplicitOutputPath(t *testing.T) {
	cfg := testConfig(t)
	video := writeVideo(t, t.TempDir())
	client := &fakeTranscriber{transcript: "1\n00:00:00,000 --> 00:00:02,000\nHi\n"}

	gen, err := New(cfg, client, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	custom := filepath.Join(t.TempDir(), "nested", "custom.srt")
	result, err := gen.Run(context.Background(), video, custom)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.OutputPath != custom {
		t.Fatalf("output path = %q, want %q", result.OutputPath, custom)
	}
	if _, err := os.Stat(custom); err != nil {
		t.Fatalf("stat output: %v", err)
	}
}

func TestRunTranscribeError(t *testing.T) {
	cfg := testConfig(t)
	video := writeVideo(t, t.TempDir())
	wantErr := errors.New("upstream refused")
	client := &fakeTranscriber{err: wantErr}

	gen, err := New(cfg, client, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := gen.Run(context.Background(), video, ""); !errors.Is(err, wantErr) {
		t.Fatalf("Run error = %v, want %v", err, wantErr)
	}
}

func TestRunRejectsUnsupportedFile(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("text"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	client := &fakeTranscriber{transcript: "ignored"}

	gen, err := New(cfg, client, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := gen.Run(context.Background(), path, ""); err == nil {
		t.Fatal("expected preflight rejection")
	}
	if client.calls != 0 {
		t.Fatalf("transcriber called %d times, want 0", client.calls)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	video := writeVideo(t, t.TempDir())
	client := &fakeTranscriber{transcript: "1\n00:00:00,000 --> 00:00:05,000\nRecorded\n"}

	store, err := history.Open(context.Background(), cfg.Paths.HistoryDB)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	gen, err := New(cfg, client, store, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := gen.Run(context.Background(), video, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	records, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("history records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.RequestID != result.RequestID {
		t.Fatalf("record request id = %q, want %q", rec.RequestID, result.RequestID)
	}
	if rec.Source != video {
		t.Fatalf("record source = %q, want %q", rec.Source, video)
	}
	if rec.CueCount != 1 || rec.DurationSeconds != 5 {
		t.Fatalf("record stats = %d cues %v seconds", rec.CueCount, rec.DurationSeconds)
	}
	if rec.Language != "ko" {
		t.Fatalf("record language = %q, want ko", rec.Language)
	}
}
