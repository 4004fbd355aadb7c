// Package arith exposes the engine's binary operations behind a common
// interface and a named registry, so that the expression evaluator, the
// service layer and the HTTP API can dispatch on an operator name or symbol.
package arith

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/bigcalc/pkg/bigint"
)

// Operation is a binary operation over big decimal integers.
type Operation interface {
	// Name returns the registry key of the operation (e.g. "add").
	Name() string
	// Symbol returns the infix operator used in expressions (e.g. "+").
	Symbol() string
	// Apply computes the operation. Implementations must not fail and must
	// not modify a or b.
	Apply(a, b bigint.Int) bigint.Int
}

// OperationFactory is a registry of Operations.
// It allows the set of operations to be replaced in tests.
type OperationFactory interface {
	// Get returns the operation registered under name.
	Get(name string) (Operation, error)
	// Lookup returns the operation whose symbol is sym.
	Lookup(sym string) (Operation, error)
	// List returns the sorted list of registered operation names.
	List() []string
	// Register adds op under op.Name(), replacing any previous entry.
	Register(op Operation) error
	// GetAll returns a copy of the registry.
	GetAll() map[string]Operation
}

// DefaultFactory is the default implementation of OperationFactory.
// It is safe for concurrent use.
type DefaultFactory struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

// NewDefaultFactory creates a factory with the standard operations
// pre-registered:
//   - "add" (+): bigint.Add
//   - "sub" (-): bigint.Sub
//   - "mul" (*): bigint.Mul
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{ops: make(map[string]Operation)}
	_ = f.Register(Func("add", "+", bigint.Add))
	_ = f.Register(Func("sub", "-", bigint.Sub))
	_ = f.Register(Func("mul", "*", bigint.Mul))
	return f
}

// Register adds op to the factory. Registering a name twice replaces the
// earlier operation.
func (f *DefaultFactory) Register(op Operation) error {
	if op == nil || op.Name() == "" {
		return fmt.Errorf("arith: cannot register an unnamed operation")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops[op.Name()] = op
	return nil
}

// Get returns the operation registered under name.
func (f *DefaultFactory) Get(name string) (Operation, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	op, ok := f.ops[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return op, nil
}

// Lookup returns the operation whose Symbol is sym.
func (f *DefaultFactory) Lookup(sym string) (Operation, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, op := range f.ops {
		if op.Symbol() == sym {
			return op, nil
		}
	}
	return nil, fmt.Errorf("%w: operator %q", ErrUnknownOperation, sym)
}

// List returns the registered names in alphabetical order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.ops))
	for name := range f.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of the registry, so that callers cannot modify the
// factory's internal map.
func (f *DefaultFactory) GetAll() map[string]Operation {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make(map[string]Operation, len(f.ops))
	for name, op := range f.ops {
		result[name] = op
	}
	return result
}

// MustGet is like Get but panics if the operation is not registered.
func (f *DefaultFactory) MustGet(name string) Operation {
	op, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("arith: required operation not found: %s", name))
	}
	return op
}

var (
	globalFactory     *DefaultFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide default factory, created on first
// use.
func GlobalFactory() *DefaultFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}
