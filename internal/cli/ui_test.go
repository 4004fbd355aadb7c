package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/pkg/bigint"
)

// MockSpinner for testing
type MockSpinner struct {
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.suffix = suffix
}

func TestFormatValue(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("1234567890", 15)

	tests := []struct {
		name     string
		value    string
		verbose  bool
		expected string
	}{
		{"Short", "12345", false, "12345"},
		{"Zero", "0", false, "0"},
		{"Negative short", "-42", false, "-42"},
		{"Long truncated", long, false, "1234567890123456789012345...6789012345678901234567890 (150 digits)"},
		{"Long negative truncated", "-" + long, false, "-1234567890123456789012345...6789012345678901234567890 (150 digits)"},
		{"Long verbose", long, true, long},
		{"At the limit", strings.Repeat("9", TruncationLimit), false, strings.Repeat("9", TruncationLimit)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FormatValue(bigint.MustParse(tt.value), tt.verbose)
			if got != tt.expected {
				t.Errorf("FormatValue() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatValue_ThousandsInDigitCount(t *testing.T) {
	t.Parallel()
	got := FormatValue(bigint.MustParse("1"+strings.Repeat("0", 1233)), false)
	if !strings.HasSuffix(got, "(1,234 digits)") {
		t.Errorf("FormatValue() = %q, want a (1,234 digits) suffix", got)
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, expected string
	}{
		{"", ""},
		{"7", "7"},
		{"999", "999"},
		{"1000", "1,000"},
		{"1234567", "1,234,567"},
		{"-1000", "-1,000"},
		{"-12", "-12"},
		{"100000", "100,000"},
	}
	for _, tt := range tests {
		if got := formatNumberString(tt.in); got != tt.expected {
			t.Errorf("formatNumberString(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestStartSpinner(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	stop := StartSpinner(&bytes.Buffer{}, 3)
	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !strings.Contains(mockS.suffix, "3 expression(s)") {
		t.Errorf("suffix = %q, want the expression count", mockS.suffix)
	}
	stop()
	if !mockS.stopped {
		t.Error("Spinner should have stopped")
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
