package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckVideoFile(t *testing.T) {
	dir := t.TempDir()

	video := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(video, []byte("not really a video"), 0o644); err != nil {
		t.Fatal(err)
	}
	size, err := CheckVideoFile(video)
	if err != nil {
		t.Fatal(err)
	}
	if size != int64(len("not really a video")) {
		t.Fatalf("unexpected size %d", size)
	}

	if _, err := CheckVideoFile(filepath.Join(dir, "missing.mp4")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CheckVideoFile(text); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestCheckStagingSpace(t *testing.T) {
	dir := t.TempDir()
	if err := CheckStagingSpace(dir, 1); err != nil {
		t.Fatalf("one byte should always fit: %v", err)
	}
	if err := CheckStagingSpace(dir, 1<<62); !errors.Is(err, ErrInsufficientSpace) {
		t.Fatalf("expected ErrInsufficientSpace, got %v", err)
	}
}
