package subtitles

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// FormatTimestamp renders seconds as an SRT timestamp, HH:MM:SS,mmm.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	millis := int64(math.Round(seconds * 1000))
	h := millis / 3_600_000
	millis -= h * 3_600_000
	m := millis / 60_000
	millis -= m * 60_000
	s := millis / 1000
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// ParseTimestamp converts an SRT timestamp back to seconds. A period is
// accepted in place of the standard comma.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ".", ","))
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// WriteSRT renders segments as numbered SubRip cues. Numbering starts at 1
// and follows segment order; cues are separated by a blank line.
func WriteSRT(w io.Writer, segments []Segment) error {
	bw := bufio.NewWriter(w)
	for i, seg := range segments {
		fmt.Fprintf(bw, "%d\n", i+1)
		fmt.Fprintf(bw, "%s --> %s\n", FormatTimestamp(seg.Start), FormatTimestamp(seg.End))
		fmt.Fprintf(bw, "%s\n\n", seg.CleanText())
	}
	return bw.Flush()
}

// WriteSRTFile renders segments into an SRT file at path.
func WriteSRTFile(path string, segments []Segment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	if err := WriteSRT(f, segments); err != nil {
		_ = f.Close()
		return fmt.Errorf("write srt: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// ParseSRT reads SubRip cues into segments. Cue numbers are ignored; cue
// order is preserved. Multi-line cue text is joined with single spaces.
func ParseSRT(r io.Reader) ([]Segment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(content), "\n\n")

	var segments []Segment
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}
		// First line is the cue number; the timing line may follow it, or be
		// first when the number is missing.
		timingIdx := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timingIdx = i
				break
			}
		}
		if timingIdx < 0 || timingIdx+1 > len(lines) {
			continue
		}
		parts := strings.SplitN(lines[timingIdx], "-->", 2)
		if len(parts) != 2 {
			continue
		}
		start, startErr := ParseTimestamp(parts[0])
		end, endErr := ParseTimestamp(parts[1])
		if startErr != nil || endErr != nil {
			return nil, fmt.Errorf("parse srt: bad timing line %q", lines[timingIdx])
		}
		text := strings.Join(lines[timingIdx+1:], " ")
		segments = append(segments, Segment{Start: start, End: end, Text: strings.TrimSpace(text)})
	}
	return segments, nil
}

// ParseSRTFile reads an SRT file into segments.
func ParseSRTFile(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open srt: %w", err)
	}
	defer f.Close()
	return ParseSRT(f)
}
