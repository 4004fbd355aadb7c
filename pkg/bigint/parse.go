package bigint

import (
	"errors"
	"fmt"
	"strings"
)

// asciiSpace is the whitespace Parse trims. Other Unicode spaces such as
// U+00A0 are rejected like any other non-digit.
const asciiSpace = " \t\n\v\f\r"

// ErrFormat is the sentinel matched by every *FormatError.
var ErrFormat = errors.New("bigint: malformed integer")

// FormatError reports text that is not a well-formed decimal integer.
type FormatError struct {
	// Input is the text passed to Parse, before whitespace trimming.
	Input string
	// Pos is the byte offset of the offending character in the trimmed
	// input, or -1 when the problem is not tied to one character.
	Pos int
	// Reason describes the problem.
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("bigint: cannot parse %q: %s at offset %d", e.Input, e.Reason, e.Pos)
	}
	return fmt.Sprintf("bigint: cannot parse %q: %s", e.Input, e.Reason)
}

// Unwrap returns ErrFormat so that errors.Is(err, ErrFormat) holds.
func (e *FormatError) Unwrap() error { return ErrFormat }

// Parse converts text to an Int.
//
// Leading and trailing ASCII whitespace is ignored. The remaining text must be an
// optional '+' or '-' followed by one or more ASCII digits, with nothing else:
// internal whitespace, a sign anywhere but the first position and any other
// character are rejected with a *FormatError. Leading zeros are accepted and
// dropped, so "0012" is 12 and "-000" is 0.
func Parse(text string) (Int, error) {
	s := strings.Trim(text, asciiSpace)
	if s == "" {
		return Int{}, &FormatError{Input: text, Pos: -1, Reason: "empty input"}
	}

	neg := false
	start := 0
	switch s[0] {
	case '-':
		neg = true
		start = 1
	case '+':
		start = 1
	}
	if start == len(s) {
		return Int{}, &FormatError{Input: text, Pos: -1, Reason: "sign without digits"}
	}

	for i := start; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			continue
		}
		return Int{}, &FormatError{Input: text, Pos: i, Reason: describe(c)}
	}

	// Skip leading zeros: they produce no stored digit.
	for start < len(s) && s[start] == '0' {
		start++
	}
	digits := make([]byte, len(s)-start)
	for i, j := len(s)-1, 0; i >= start; i, j = i-1, j+1 {
		digits[j] = s[i] - '0'
	}
	return normalize(neg, digits), nil
}

// MustParse is like Parse but panics if text is malformed.
// It simplifies initialisation of constants and test tables.
func MustParse(text string) Int {
	x, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return x
}

func describe(c byte) string {
	switch c {
	case '+', '-':
		return "misplaced sign"
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return "whitespace between digits"
	}
	if c < 0x20 || c >= 0x7f {
		return fmt.Sprintf("invalid byte 0x%02x", c)
	}
	return fmt.Sprintf("invalid character %q", c)
}
