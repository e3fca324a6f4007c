package media

import (
	"path/filepath"
	"strings"
)

// Kind classifies a media file by its container type.
type Kind string

const (
	// KindAudio marks files the transcriber can consume directly.
	KindAudio Kind = "audio"
	// KindVideo marks files that need their audio extracted first.
	KindVideo Kind = "video"
)

// MediaFile is a discovered transcription candidate. Immutable once resolved.
type MediaFile struct {
	Path string
	Kind Kind
}

// Stem returns the base filename without its extension.
func (m MediaFile) Stem() string {
	base := filepath.Base(m.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var audioExtensions = map[string]struct{}{
	".wav": {},
	".m4a": {},
	".mp3": {},
}

var videoExtensions = map[string]struct{}{
	".mp4": {},
}

// Classify reports the Kind for a path based on its extension.
// The second result is false when the extension is unsupported.
func Classify(path string) (Kind, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := audioExtensions[ext]; ok {
		return KindAudio, true
	}
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo, true
	}
	return "", false
}

// SupportedExtensions returns the recognized extensions in sorted order,
// without leading dots, for error messages and help text.
func SupportedExtensions() []string {
	return []string{"m4a", "mp3", "mp4", "wav"}
}
