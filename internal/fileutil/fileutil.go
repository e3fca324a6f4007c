// Package fileutil holds small path helpers shared by both binaries.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Stem returns the base filename without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReplaceExt swaps the extension of path for ext (which must include the
// leading dot).
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// HasExt reports whether path carries the given extension, ignoring case.
// ext must include the leading dot.
func HasExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
