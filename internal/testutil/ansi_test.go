package testutil

import "testing"

func TestStripAnsiCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, expected string
	}{
		{"plain", "plain"},
		{"\x1b[32m144\x1b[0m", "144"},
		{"\x1b[1;31mError\x1b[0m: x", "Error: x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripAnsiCodes(tt.in); got != tt.expected {
			t.Errorf("StripAnsiCodes(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestAssertContainsAll(t *testing.T) {
	t.Parallel()
	AssertContainsAll(t, "\x1b[36mx\x1b[0m = \x1b[32m12\x1b[0m", "x = 12", "12")
}
