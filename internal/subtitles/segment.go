package subtitles

import "strings"

// Segment is one timed span of recognized speech. Times are seconds from the
// start of the media; the upstream recognizer guarantees non-decreasing,
// non-overlapping spans.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// CleanText returns the segment text with surrounding whitespace trimmed.
func (s Segment) CleanText() string {
	return strings.TrimSpace(s.Text)
}

// PlainText joins segment texts with newlines, one segment per line, with no
// timestamps. The joining convention is fixed so transcript output is
// deterministic and lossless with respect to segment text.
func PlainText(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.CleanText())
		b.WriteByte('\n')
	}
	return b.String()
}
