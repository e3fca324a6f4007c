package language

import "testing"

func TestNormalizeHint(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Auto-detect forms
		{"", ""},
		{"auto", ""},
		{"AUTO", ""},
		// 2-letter codes pass through
		{"en", "en"},
		{"EN", "en"},
		{"xy", "xy"},
		// 3-letter codes convert
		{"eng", "en"},
		{"zho", "zh"},
		{"chi", "zh"},
		// Cantonese keeps its 3-letter Whisper code
		{"yue", "yue"},
		{"cantonese", "yue"},
		// Word forms
		{"english", "en"},
		{"Mandarin", "zh"},
		// ISO 639-2 alternates
		{"fra", "fr"},
		{"fre", "fr"},
		{"german", "de"},
		// Unknown 3-letter is dropped
		{"xyz", ""},
	}
	for _, tc := range tests {
		if got := NormalizeHint(tc.input); got != tc.expected {
			t.Errorf("NormalizeHint(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "Auto"},
		{"auto", "Auto"},
		{"en", "English"},
		{"yue", "Cantonese"},
		{"zho", "Chinese"},
	}
	for _, tc := range tests {
		if got := DisplayName(tc.input); got != tc.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestDisplayNameFallsBackToCLDR(t *testing.T) {
	// Thai is not in the local table but is a valid BCP 47 tag.
	if got := DisplayName("th"); got != "Thai" {
		t.Errorf("DisplayName(th) = %q, want Thai", got)
	}
}
