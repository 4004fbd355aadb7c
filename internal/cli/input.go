package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// ReadExpressions reads one expression per line from r. Blank lines and
// lines starting with '#' are skipped; surrounding whitespace is trimmed.
func ReadExpressions(r io.Reader) ([]string, error) {
	var exprs []string
	scanner := bufio.NewScanner(r)
	// Expressions with very long literals are legitimate input.
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return exprs, nil
}

// LoadExpressions collects the expressions of a run: those read from path,
// if set ("-" reads stdin), followed by args.
func LoadExpressions(path string, args []string, stdin io.Reader) ([]string, error) {
	var exprs []string
	if path != "" {
		r := stdin
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				return nil, apperrors.WrapError(err, "failed to open expression file")
			}
			defer f.Close()
			r = f
		}
		fromFile, err := ReadExpressions(r)
		if err != nil {
			return nil, apperrors.WrapError(err, "failed to read expressions from %s", path)
		}
		exprs = fromFile
	}
	return append(exprs, args...), nil
}
