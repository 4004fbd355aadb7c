package expr

import "fmt"

// SyntaxError reports a malformed expression.
type SyntaxError struct {
	// Pos is the byte offset in the source where the problem was detected.
	Pos int
	// Msg describes the problem.
	Msg string
	// Err is the underlying cause, if any (for example a literal that the
	// engine rejected, or an unknown operator).
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// UnboundError reports an identifier with no value in the evaluation scope.
type UnboundError struct {
	Name string
	Pos  int
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("undefined variable %q at offset %d", e.Name, e.Pos)
}
