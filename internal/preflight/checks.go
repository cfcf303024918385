// Package preflight validates inputs before anything is sent to the
// transcription API.
package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// MaxUploadBytes is the File API hard limit.
const MaxUploadBytes = 2 << 30 // 2 GiB

var (
	ErrNotFound          = errors.New("video file does not exist")
	ErrUnsupportedFormat = errors.New("unsupported video format")
	ErrTooLarge          = errors.New("video exceeds the 2 GiB upload limit")
	ErrInsufficientSpace = errors.New("insufficient free space in staging directory")
)

// supportedExtensions lists the container formats the transcription API accepts.
var supportedExtensions = map[string]struct{}{
	".mp4":  {},
	".mpeg": {},
	".mov":  {},
	".avi":  {},
	".flv":  {},
	".mpg":  {},
	".webm": {},
	".wmv":  {},
	".3gp":  {},
}

// CheckVideoFile verifies the input exists, has a supported extension, and
// fits under the upload limit. It returns the file size for later space checks.
func CheckVideoFile(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return 0, fmt.Errorf("stat video: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := supportedExtensions[ext]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if info.Size() > MaxUploadBytes {
		return 0, fmt.Errorf("%w: %d bytes", ErrTooLarge, info.Size())
	}
	return info.Size(), nil
}

// CheckStagingSpace verifies the staging volume has at least need bytes free.
func CheckStagingSpace(stagingDir string, need int64) error {
	var stat unix.Statfs_t
	if err := unix.Statfs(stagingDir, &stat); err != nil {
		return fmt.Errorf("statfs %s: %w", stagingDir, err)
	}
	free := int64(stat.Bavail) * stat.Bsize
	if free < need {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrInsufficientSpace, need, free)
	}
	return nil
}
