// Package fsutil reads Markdown sources and writes converted output safely.
//
// Sources are decoded to UTF-8 (a UTF-8 byte order mark is dropped, UTF-16
// with a byte order mark is transcoded) and rejected when they look binary.
// Output files are written through a temp file and rename, and left alone
// when their content would not change.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Sentinel errors for categorizing file failures with errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrBinary indicates the content does not look like text.
	ErrBinary = errors.New("binary content")
)

// ReadFile reads path and returns its raw content and permission bits.
func ReadFile(ctx context.Context, path string) ([]byte, os.FileMode, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, 0, classify(path, err)
	}
	if stat.IsDir() {
		return nil, 0, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, classify(path, err)
	}

	return content, stat.Mode().Perm(), nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
