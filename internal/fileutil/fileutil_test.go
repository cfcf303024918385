package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveTextCreatesParents(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "a", "b", "out.srt")

	path, err := SaveText("1\n00:00:00,000 --> 00:00:10,000\nhi\n\n", dst)
	if err != nil {
		t.Fatal(err)
	}
	if path != dst {
		t.Fatalf("returned path %q, want %q", path, dst)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "1\n00:00:00,000 --> 00:00:10,000\nhi\n\n" {
		t.Fatalf("content mismatch: %q", got)
	}
}

func TestSaveTextOverwrites(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.srt")
	if _, err := SaveText("old content that is longer", dst); err != nil {
		t.Fatal(err)
	}
	if _, err := SaveText("new", dst); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("expected overwrite, got %q", got)
	}
}

func TestSaveTextSurfacesWriteErrors(t *testing.T) {
	dir := t.TempDir()
	// A directory at the destination path forces the open to fail.
	dst := filepath.Join(dir, "taken")
	if err := os.Mkdir(dst, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := SaveText("content", dst); err == nil {
		t.Fatal("expected error writing over a directory")
	}
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x", "y")
	if err := EnsureDir(path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.IsDir() {
		t.Fatal("expected directory")
	}
}
