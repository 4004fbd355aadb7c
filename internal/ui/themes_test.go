package ui

import (
	"testing"
	"time"
)

func TestSetTheme(t *testing.T) {
	originalTheme := GetCurrentTheme()
	defer SetCurrentTheme(originalTheme)

	testCases := []struct {
		name      string
		themeName string
		expected  string
	}{
		{"dark theme", "dark", "dark"},
		{"light theme", "light", "light"},
		{"no color theme", "none", "none"},
		{"unknown defaults to dark", "solarized", "dark"},
		{"empty defaults to dark", "", "dark"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetTheme(tc.themeName)
			if got := GetCurrentTheme().Name; got != tc.expected {
				t.Errorf("SetTheme(%q): got %q, want %q", tc.themeName, got, tc.expected)
			}
		})
	}
}

func TestInitTheme(t *testing.T) {
	originalTheme := GetCurrentTheme()
	defer SetCurrentTheme(originalTheme)

	t.Run("flag disables colors", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		InitTheme(true)
		if GetCurrentTheme().Name != "none" {
			t.Errorf("InitTheme(true) = %q, want none", GetCurrentTheme().Name)
		}
	})

	t.Run("NO_COLOR disables colors even when empty", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		InitTheme(false)
		if GetCurrentTheme().Name != "none" {
			t.Errorf("InitTheme(false) with NO_COLOR = %q, want none", GetCurrentTheme().Name)
		}
	})
}

func TestPaint(t *testing.T) {
	originalTheme := GetCurrentTheme()
	defer SetCurrentTheme(originalTheme)

	SetCurrentTheme(DarkTheme)
	if got := Paint(ColorValue(), "42"); got != DarkTheme.Value+"42"+DarkTheme.Reset {
		t.Errorf("Paint with dark theme = %q", got)
	}

	SetCurrentTheme(NoColorTheme)
	if got := Paint(ColorValue(), "42"); got != "42" {
		t.Errorf("Paint with no colors = %q, want %q", got, "42")
	}

	var colors ErrorColors
	if colors.Red() != "" || colors.Yellow() != "" || colors.Reset() != "" {
		t.Error("ErrorColors should be empty with the no-color theme")
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "< 1µs"},
		{750 * time.Microsecond, "750µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
		{2*time.Minute + 3*time.Second + 400*time.Microsecond, "2m3s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
