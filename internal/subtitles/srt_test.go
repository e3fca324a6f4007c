package subtitles_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/subtitles"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{2.5, "00:00:02,500"},
		{130.0, "00:02:10,000"},
		{3661.042, "01:01:01,042"},
		{-1, "00:00:00,000"},
	}
	for _, tc := range tests {
		if got := subtitles.FormatTimestamp(tc.seconds); got != tc.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	seconds, err := subtitles.ParseTimestamp("00:02:10,000")
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	if seconds != 130.0 {
		t.Fatalf("expected 130.0, got %v", seconds)
	}
	if _, err := subtitles.ParseTimestamp("junk"); err == nil {
		t.Fatal("expected error for invalid timestamp")
	}
}

func TestWriteSRTNumbersAndTimestamps(t *testing.T) {
	segments := []subtitles.Segment{
		{Start: 0.0, End: 1.2, Text: " hello "},
		{Start: 2.5, End: 4.0, Text: "world"},
		{Start: 130.0, End: 132.5, Text: "later"},
	}
	var b strings.Builder
	if err := subtitles.WriteSRT(&b, segments); err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}
	out := b.String()

	blocks := strings.Split(strings.TrimSpace(out), "\n\n")
	if len(blocks) != 3 {
		t.Fatalf("expected 3 cues, got %d:\n%s", len(blocks), out)
	}
	if !strings.HasPrefix(blocks[0], "1\n00:00:00,000 --> 00:00:01,200\nhello") {
		t.Fatalf("unexpected first cue:\n%s", blocks[0])
	}
	if !strings.HasPrefix(blocks[2], "3\n00:02:10,000 --> ") {
		t.Fatalf("third cue should start at 00:02:10,000:\n%s", blocks[2])
	}
}

func TestSRTRoundTrip(t *testing.T) {
	segments := []subtitles.Segment{
		{Start: 0.5, End: 2.0, Text: "first line"},
		{Start: 2.0, End: 4.25, Text: "second line"},
	}
	path := filepath.Join(t.TempDir(), "clip.srt")
	if err := subtitles.WriteSRTFile(path, segments); err != nil {
		t.Fatalf("WriteSRTFile: %v", err)
	}
	parsed, err := subtitles.ParseSRTFile(path)
	if err != nil {
		t.Fatalf("ParseSRTFile: %v", err)
	}
	if len(parsed) != len(segments) {
		t.Fatalf("expected %d segments, got %d", len(segments), len(parsed))
	}
	for i := range segments {
		if parsed[i] != segments[i] {
			t.Errorf("segment %d mismatch: got %+v want %+v", i, parsed[i], segments[i])
		}
	}
}

func TestParseSRTMultilineCue(t *testing.T) {
	input := "1\n00:00:00,000 --> 00:00:02,000\nline one\nline two\n\n"
	parsed, err := subtitles.ParseSRT(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(parsed))
	}
	if parsed[0].Text != "line one line two" {
		t.Fatalf("unexpected text %q", parsed[0].Text)
	}
}

func TestPlainTextJoinsWithNewlines(t *testing.T) {
	segments := []subtitles.Segment{
		{Text: " a "},
		{Text: "b"},
	}
	if got := subtitles.PlainText(segments); got != "a\nb\n" {
		t.Fatalf("unexpected transcript %q", got)
	}
}

func TestWriteTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.txt")
	err := subtitles.WriteTextFile(path, []subtitles.Segment{{Text: "only"}})
	if err != nil {
		t.Fatalf("WriteTextFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "only\n" {
		t.Fatalf("unexpected content %q", string(data))
	}
}
