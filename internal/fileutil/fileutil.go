// Package fileutil provides the file sink and small filesystem helpers.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SaveText writes content to path as UTF-8, creating parent directories and
// overwriting any existing file. This is the one loud failure boundary of the
// conversion pipeline: write errors are wrapped and returned to the caller.
func SaveText(content, path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	if _, err := io.WriteString(file, content); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close output file: %w", err)
	}
	return path, nil
}

// EnsureDir creates the directory (and parents) when missing.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", path, err)
	}
	return nil
}
