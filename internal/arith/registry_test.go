package arith

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/agbru/bigcalc/pkg/bigint"
)

func TestDefaultFactoryOperations(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	tests := []struct {
		name, symbol string
		a, b         string
		expected     string
	}{
		{"add", "+", "999", "1", "1000"},
		{"sub", "-", "3", "10", "-7"},
		{"mul", "*", "-12", "12", "-144"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			op, err := f.Get(tt.name)
			if err != nil {
				t.Fatalf("Get(%q): %v", tt.name, err)
			}
			if op.Symbol() != tt.symbol {
				t.Errorf("Symbol() = %q, want %q", op.Symbol(), tt.symbol)
			}
			bySym, err := f.Lookup(tt.symbol)
			if err != nil || bySym.Name() != tt.name {
				t.Errorf("Lookup(%q) = %v, %v", tt.symbol, bySym, err)
			}
			got := op.Apply(bigint.MustParse(tt.a), bigint.MustParse(tt.b))
			if got.String() != tt.expected {
				t.Errorf("%s(%s, %s) = %s, want %s", tt.name, tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestFactoryUnknown(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	if _, err := f.Get("div"); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("Get(div) error = %v, want ErrUnknownOperation", err)
	}
	if _, err := f.Lookup("/"); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("Lookup(/) error = %v, want ErrUnknownOperation", err)
	}
}

func TestFactoryListAndRegister(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	if got, want := f.List(), []string{"add", "mul", "sub"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	square := Func("sqmul", "**", func(a, b bigint.Int) bigint.Int { return bigint.Mul(bigint.Mul(a, a), b) })
	if err := f.Register(square); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := f.Register(Func("", "?", bigint.Add)); err == nil {
		t.Error("Register accepted an unnamed operation")
	}
	if len(f.List()) != 4 {
		t.Errorf("List() after Register = %v", f.List())
	}

	all := f.GetAll()
	delete(all, "add")
	if _, err := f.Get("add"); err != nil {
		t.Error("GetAll returned the internal map")
	}
}

func TestMustGetPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("MustGet did not panic")
		}
	}()
	NewDefaultFactory().MustGet("pow")
}

func TestGlobalFactoryConcurrentAccess(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			op := GlobalFactory().MustGet("add")
			_ = op.Apply(bigint.One(), bigint.One())
			_ = GlobalFactory().List()
		}()
	}
	wg.Wait()
	if GlobalFactory() != GlobalFactory() {
		t.Error("GlobalFactory is not a singleton")
	}
}
