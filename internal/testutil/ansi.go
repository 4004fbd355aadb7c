// Package testutil provides shared testing utilities used across the project.
package testutil

import (
	"regexp"
	"strings"
	"testing"
)

// ansiRegex matches CSI escape sequences (ESC [ ... letter), which is all the
// colour output of bigcalc produces.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape codes from a string.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// AssertContainsAll fails the test for every want missing from the
// colour-stripped output.
func AssertContainsAll(t testing.TB, output string, wants ...string) {
	t.Helper()
	plain := StripAnsiCodes(output)
	for _, want := range wants {
		if !strings.Contains(plain, want) {
			t.Errorf("output missing %q:\n%s", want, plain)
		}
	}
}
