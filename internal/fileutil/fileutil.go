// Package fileutil provides file and path utility functions.
package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// ValidateExtension checks that the extension is safe to append to a file name.
// The extension is given without its leading dot.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsHidden reports whether the base name of path starts with a dot.
// Only the name is inspected, never file attributes. Paths without a name
// ("", ".", "/") are not hidden.
func IsHidden(path string) bool {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return false
	}
	return strings.HasPrefix(base, ".")
}

// StripExtension removes the final extension from name.
// A name whose only dot is the leading one (".profile") is returned unchanged.
//
// Examples:
//   - "notes.md" -> "notes"
//   - "archive.tar.gz" -> "archive.tar"
//   - "README" -> "README"
//   - ".profile" -> ".profile"
func StripExtension(name string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" || strings.HasSuffix(stem, string(filepath.Separator)) || strings.HasSuffix(stem, "/") {
		return name
	}
	return stem
}

// ForceExtension replaces the final extension of path with extension,
// adding one when path has none.
func ForceExtension(path, extension string) (string, error) {
	if err := ValidateExtension(extension); err != nil {
		return "", err
	}
	return StripExtension(path) + "." + extension, nil
}

// WriteFileAtomic writes data to path through a temporary file in the same
// directory followed by a rename, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
