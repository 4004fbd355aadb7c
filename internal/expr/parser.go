package expr

import (
	"fmt"

	"github.com/agbru/bigcalc/internal/arith"
	"github.com/agbru/bigcalc/pkg/bigint"
)

// maxDepth bounds the nesting of parentheses and unary signs.
const maxDepth = 256

// binaryPrecedence lists the binding power of every infix operator the lexer
// recognises. Operators without a registered operation are rejected when the
// parser meets them.
var binaryPrecedence = map[string]int{
	"+": 1,
	"-": 1,
	"*": 2,
	"/": 2,
	"%": 2,
	"^": 3,
}

type parser struct {
	toks   []token
	pos    int
	depth  int
	ops    arith.OperationFactory
	digits int // widest literal seen so far
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// parseExpr parses a binary expression whose operators bind at least as
// tightly as minPrec (precedence climbing).
func (p *parser) parseExpr(minPrec int) (node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp {
			return lhs, nil
		}
		prec, ok := binaryPrecedence[t.text]
		if !ok || prec < minPrec {
			return lhs, nil
		}
		p.next()
		op, err := p.ops.Lookup(t.text)
		if err != nil {
			return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("operator %q is not supported", t.text), Err: err}
		}
		// All operators are left-associative.
		rhs, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		lhs = binary{op: op, x: lhs, y: rhs}
	}
}

func (p *parser) parseUnary() (node, error) {
	t := p.peek()
	if t.kind == tokOp && (t.text == "-" || t.text == "+") {
		p.next()
		if err := p.enter(t.pos); err != nil {
			return nil, err
		}
		defer p.leave()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if t.text == "+" {
			return x, nil
		}
		return negation{x: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokInt:
		v, err := bigint.Parse(t.text)
		if err != nil {
			return nil, &SyntaxError{Pos: t.pos, Msg: "malformed integer", Err: err}
		}
		if v.DigitCount() > p.digits {
			p.digits = v.DigitCount()
		}
		return literal{value: v}, nil
	case tokIdent:
		return ident{name: t.text, pos: t.pos}, nil
	case tokLParen:
		if err := p.enter(t.pos); err != nil {
			return nil, err
		}
		defer p.leave()
		inner, err := p.parseExpr(1)
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, &SyntaxError{Pos: closing.pos, Msg: fmt.Sprintf("expected ')', found %s", describeToken(closing))}
		}
		return inner, nil
	default:
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("expected operand, found %s", describeToken(t))}
	}
}

func (p *parser) enter(pos int) error {
	p.depth++
	if p.depth > maxDepth {
		return &SyntaxError{Pos: pos, Msg: "expression nested too deeply"}
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func describeToken(t token) string {
	switch t.kind {
	case tokEOF, tokLParen, tokRParen:
		return t.kind.String()
	}
	return fmt.Sprintf("%s %q", t.kind, t.text)
}
