package subtitles

import (
	"fmt"
	"os"
)

// WriteTextFile renders segments as a plain-text transcript at path.
func WriteTextFile(path string, segments []Segment) error {
	if err := os.WriteFile(path, []byte(PlainText(segments)), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
