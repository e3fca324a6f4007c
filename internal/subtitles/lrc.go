package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
)

// WriteLRC renders segments as an LRC lyric file. Each line is stamped with
// the segment start time as [MM:SS.cc]; the header carries the given title.
func WriteLRC(w io.Writer, segments []Segment, title string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "[ti:%s]\n", title)
	fmt.Fprintln(bw, "[ar:]")
	fmt.Fprintln(bw, "[al:]")
	fmt.Fprintln(bw, "[by:scribe]")
	fmt.Fprintln(bw, "[offset:0]")
	fmt.Fprintln(bw)
	for _, seg := range segments {
		fmt.Fprintf(bw, "%s%s\n", formatLRCTimestamp(seg.Start), seg.CleanText())
	}
	return bw.Flush()
}

// WriteLRCFile renders segments into an LRC file at path.
func WriteLRCFile(path string, segments []Segment, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write lrc: %w", err)
	}
	if err := WriteLRC(f, segments, title); err != nil {
		_ = f.Close()
		return fmt.Errorf("write lrc: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write lrc: %w", err)
	}
	return nil
}

func formatLRCTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	minutes := int(seconds) / 60
	secs := int(seconds) % 60
	centis := int((seconds - math.Floor(seconds)) * 100)
	return fmt.Sprintf("[%02d:%02d.%02d]", minutes, secs, centis)
}
