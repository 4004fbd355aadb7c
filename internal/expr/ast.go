package expr

import (
	"context"
	"strings"

	"github.com/agbru/bigcalc/internal/arith"
	"github.com/agbru/bigcalc/pkg/bigint"
)

// node is an evaluable expression tree node.
type node interface {
	eval(ctx context.Context, scope Scope) (bigint.Int, error)
	// write renders the node in fully parenthesised canonical form.
	write(sb *strings.Builder)
}

type literal struct {
	value bigint.Int
}

func (n literal) eval(context.Context, Scope) (bigint.Int, error) { return n.value, nil }

func (n literal) write(sb *strings.Builder) { sb.WriteString(n.value.String()) }

type ident struct {
	name string
	pos  int
}

func (n ident) eval(_ context.Context, scope Scope) (bigint.Int, error) {
	v, ok := scope[n.name]
	if !ok {
		return bigint.Int{}, &UnboundError{Name: n.name, Pos: n.pos}
	}
	return v, nil
}

func (n ident) write(sb *strings.Builder) { sb.WriteString(n.name) }

type negation struct {
	x node
}

func (n negation) eval(ctx context.Context, scope Scope) (bigint.Int, error) {
	v, err := n.x.eval(ctx, scope)
	if err != nil {
		return bigint.Int{}, err
	}
	return bigint.Neg(v), nil
}

func (n negation) write(sb *strings.Builder) {
	sb.WriteString("(-")
	n.x.write(sb)
	sb.WriteByte(')')
}

type binary struct {
	op   arith.Operation
	x, y node
}

func (n binary) eval(ctx context.Context, scope Scope) (bigint.Int, error) {
	x, err := n.x.eval(ctx, scope)
	if err != nil {
		return bigint.Int{}, err
	}
	y, err := n.y.eval(ctx, scope)
	if err != nil {
		return bigint.Int{}, err
	}
	if err := ctx.Err(); err != nil {
		return bigint.Int{}, err
	}
	return n.op.Apply(x, y), nil
}

func (n binary) write(sb *strings.Builder) {
	sb.WriteByte('(')
	n.x.write(sb)
	sb.WriteString(" " + n.op.Symbol() + " ")
	n.y.write(sb)
	sb.WriteByte(')')
}
