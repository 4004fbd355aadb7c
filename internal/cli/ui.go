// Package cli implements the terminal front end of bigcalc: reading
// expressions, rendering results, the activity spinner and the interactive
// REPL.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/briandowns/spinner"
	"golang.org/x/term"

	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/pkg/bigint"
)

const (
	// TruncationLimit is the digit count above which values are shortened
	// unless verbose output is requested.
	TruncationLimit = 100
	// DisplayEdges is the number of leading and trailing digits kept when a
	// value is truncated.
	DisplayEdges = 25
	// SpinnerRefreshRate is the animation period of the spinner.
	SpinnerRefreshRate = 100 * time.Millisecond
)

// Spinner abstracts the terminal spinner so that tests can replace it.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation and clears its line.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// StartSpinner shows a spinner labelled with the number of expressions being
// evaluated and returns the function that stops it.
func StartSpinner(out io.Writer, count int) (stop func()) {
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(fmt.Sprintf(" evaluating %d expression(s)...", count))
	s.Start()
	return s.Stop
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd, err := safecast.Conv[int](f.Fd())
	if err != nil {
		return false
	}
	return term.IsTerminal(fd)
}

// FormatValue renders v for display. Values wider than TruncationLimit
// digits are shortened to their first and last DisplayEdges digits unless
// verbose is set.
func FormatValue(v bigint.Int, verbose bool) string {
	s := v.String()
	digits := v.DigitCount()
	if verbose || digits <= TruncationLimit {
		return s
	}
	sign := ""
	if v.IsNeg() {
		sign, s = "-", s[1:]
	}
	return fmt.Sprintf("%s%s...%s (%s digits)", sign, s[:DisplayEdges], s[len(s)-DisplayEdges:],
		formatNumberString(fmt.Sprint(digits)))
}

// formatNumberString inserts thousand separators into a numeric string.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/3)
	builder.WriteString(prefix)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])
	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}

// printTruncationTip reminds the user how to see full values.
func printTruncationTip(out io.Writer) {
	fmt.Fprintf(out, "%s(Tip: use the -v option to display full values)%s\n", ui.ColorMuted(), ui.ColorReset())
}
