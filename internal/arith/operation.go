package arith

import (
	"errors"

	"github.com/agbru/bigcalc/pkg/bigint"
)

// ErrUnknownOperation is returned when a name or symbol is not registered.
var ErrUnknownOperation = errors.New("unknown operation")

// funcOperation adapts a plain function to the Operation interface.
type funcOperation struct {
	name   string
	symbol string
	fn     func(a, b bigint.Int) bigint.Int
}

// Func returns an Operation named name, written as symbol in expressions,
// that delegates to fn.
func Func(name, symbol string, fn func(a, b bigint.Int) bigint.Int) Operation {
	return funcOperation{name: name, symbol: symbol, fn: fn}
}

func (o funcOperation) Name() string   { return o.name }
func (o funcOperation) Symbol() string { return o.symbol }

func (o funcOperation) Apply(a, b bigint.Int) bigint.Int {
	return o.fn(a, b)
}
