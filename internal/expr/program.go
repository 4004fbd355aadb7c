// Package expr compiles and evaluates integer arithmetic expressions over
// bigint values.
//
// The grammar, whitespace between tokens being ignored, is:
//
//	expr    := term (('+' | '-') term)*
//	term    := unary ('*' unary)*
//	unary   := ('+' | '-') unary | primary
//	primary := INTEGER | IDENT | '(' expr ')'
//
// Integer literals are handed to bigint.Parse, identifiers are resolved in a
// Scope at evaluation time and operators are dispatched through an
// arith.OperationFactory.
package expr

import (
	"context"
	"fmt"
	"strings"

	"github.com/agbru/bigcalc/internal/arith"
	"github.com/agbru/bigcalc/pkg/bigint"
)

// Scope binds identifiers to values during evaluation.
type Scope map[string]bigint.Int

// Program is a compiled expression. It is immutable and may be evaluated
// concurrently with different scopes.
type Program struct {
	root      node
	maxDigits int
}

// Compile parses src using the global operation registry.
func Compile(src string) (*Program, error) {
	return CompileWith(src, arith.GlobalFactory())
}

// CompileWith parses src, resolving operators through ops.
func CompileWith(src string, ops arith.OperationFactory) (*Program, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, ops: ops}
	root, err := p.parseExpr(1)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s", describeToken(t))}
	}
	return &Program{root: root, maxDigits: p.digits}, nil
}

// Eval evaluates the program. Identifiers are looked up in scope, which may
// be nil when the expression has none. Cancellation of ctx is observed
// between operations.
func (p *Program) Eval(ctx context.Context, scope Scope) (bigint.Int, error) {
	if err := ctx.Err(); err != nil {
		return bigint.Int{}, err
	}
	return p.root.eval(ctx, scope)
}

// MaxLiteralDigits returns the digit count of the widest integer literal in
// the program.
func (p *Program) MaxLiteralDigits() int { return p.maxDigits }

// String renders the program in fully parenthesised canonical form, e.g.
// "1 + 2*3" becomes "(1 + (2 * 3))".
func (p *Program) String() string {
	var sb strings.Builder
	p.root.write(&sb)
	return sb.String()
}

// Eval compiles and evaluates src in a single step.
func Eval(ctx context.Context, src string, scope Scope) (bigint.Int, error) {
	prog, err := Compile(src)
	if err != nil {
		return bigint.Int{}, err
	}
	return prog.Eval(ctx, scope)
}
