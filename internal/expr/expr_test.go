package expr

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/bigcalc/internal/arith"
	"github.com/agbru/bigcalc/pkg/bigint"
)

func TestEval(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src      string
		expected string
	}{
		{"0012", "12"},
		{"-000", "0"},
		{"999 + 1", "1000"},
		{"-5 + 3", "-2"},
		{"123 * 456", "56088"},
		{"-12 * 0", "0"},
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"10 - 3 - 2", "5"},
		{"2 - -3", "5"},
		{"--4", "4"},
		{"+-+4", "-4"},
		{"-(2 * -3) * -(1)", "-6"},
		{"  99999999999999999999 *99999999999999999999 ", "9999999999999999999800000000000000000001"},
		{"x * x - y", "140"},
	}
	scope := Scope{"x": bigint.MustParse("12"), "y": bigint.MustParse("4")}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			got, err := Eval(context.Background(), tt.src, scope)
			if err != nil {
				t.Fatalf("Eval(%q): %v", tt.src, err)
			}
			if got.String() != tt.expected {
				t.Errorf("Eval(%q) = %s, want %s", tt.src, got, tt.expected)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src        string
		pos        int
		msgPart    string
		wrapsUnkOp bool
	}{
		{"", 0, "expected operand, found end of input", false},
		{"12  345", 4, `unexpected integer "345"`, false},
		{"1 +", 3, "expected operand", false},
		{"(1 + 2", 6, "expected ')'", false},
		{"1 + 2)", 5, `unexpected ')'`, false},
		{"7 / 2", 2, `operator "/" is not supported`, true},
		{"7 % 2", 2, `operator "%" is not supported`, true},
		{"2 ^ 8", 2, `operator "^" is not supported`, true},
		{"3 & 1", 2, `unexpected character '&'`, false},
		{"1.5", 1, `unexpected character '.'`, false},
		{"*3", 0, `expected operand, found operator "*"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			_, err := Compile(tt.src)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Compile(%q) error = %v, want *SyntaxError", tt.src, err)
			}
			if se.Pos != tt.pos {
				t.Errorf("Pos = %d, want %d", se.Pos, tt.pos)
			}
			if !strings.Contains(se.Error(), tt.msgPart) {
				t.Errorf("error %q does not contain %q", se.Error(), tt.msgPart)
			}
			if got := errors.Is(err, arith.ErrUnknownOperation); got != tt.wrapsUnkOp {
				t.Errorf("errors.Is(err, ErrUnknownOperation) = %v, want %v", got, tt.wrapsUnkOp)
			}
		})
	}
}

func TestNestingLimit(t *testing.T) {
	t.Parallel()
	src := strings.Repeat("(", maxDepth+1) + "1" + strings.Repeat(")", maxDepth+1)
	if _, err := Compile(src); err == nil || !strings.Contains(err.Error(), "nested too deeply") {
		t.Errorf("Compile(deep) error = %v", err)
	}
	ok := strings.Repeat("(", maxDepth-1) + "1" + strings.Repeat(")", maxDepth-1)
	if _, err := Compile(ok); err != nil {
		t.Errorf("Compile(depth %d): %v", maxDepth-1, err)
	}
}

func TestUnboundVariable(t *testing.T) {
	t.Parallel()
	_, err := Eval(context.Background(), "ans + 1", nil)
	var ue *UnboundError
	if !errors.As(err, &ue) {
		t.Fatalf("error = %v, want *UnboundError", err)
	}
	if ue.Name != "ans" || ue.Pos != 0 {
		t.Errorf("UnboundError = %+v", ue)
	}
}

func TestEvalHonoursCancellation(t *testing.T) {
	t.Parallel()
	prog, err := Compile("1 + 2")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := prog.Eval(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Eval on canceled context = %v, want context.Canceled", err)
	}
}

func TestProgramIntrospection(t *testing.T) {
	t.Parallel()
	prog, err := Compile("0001 + 2*-(345)")
	if err != nil {
		t.Fatal(err)
	}
	if got := prog.String(); got != "(1 + (2 * (-345)))" {
		t.Errorf("String() = %q", got)
	}
	if prog.MaxLiteralDigits() != 3 {
		t.Errorf("MaxLiteralDigits() = %d, want 3", prog.MaxLiteralDigits())
	}
}

func TestCustomFactory(t *testing.T) {
	t.Parallel()
	ops := arith.NewDefaultFactory()
	// Rebind '*' to a saturating variant to prove dispatch goes through the factory.
	_ = ops.Register(arith.Func("mul", "*", func(a, b bigint.Int) bigint.Int { return bigint.Zero() }))
	prog, err := CompileWith("6 * 7 + 1", ops)
	if err != nil {
		t.Fatal(err)
	}
	got, err := prog.Eval(context.Background(), nil)
	if err != nil || got.String() != "1" {
		t.Errorf("Eval = %s, %v; want 1", got, err)
	}
}

// TestEvalMatchesMathBig_PropertyBased builds random expressions and checks
// the evaluator against math/big.
func TestEvalMatchesMathBig_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 150
	properties := gopter.NewProperties(parameters)

	operand := gen.RegexMatch(`[0-9]{1,30}`)
	operator := gen.OneConstOf("+", "-", "*")

	properties.Property("a op b op c agrees with math/big", prop.ForAll(
		func(a, b, c, op1, op2 string) bool {
			src := fmt.Sprintf("%s %s -%s %s %s", a, op1, b, op2, c)
			got, err := Eval(context.Background(), src, nil)
			if err != nil {
				t.Logf("Eval(%q): %v", src, err)
				return false
			}
			return got.String() == reference(a, op1, "-"+b, op2, c).String()
		},
		operand, operand, operand, operator, operator,
	))

	properties.TestingRun(t)
}

// reference evaluates "a op1 b op2 c" with standard precedence.
func reference(a, op1, b, op2, c string) *big.Int {
	x, _ := new(big.Int).SetString(a, 10)
	y, _ := new(big.Int).SetString(b, 10)
	z, _ := new(big.Int).SetString(c, 10)
	apply := func(l *big.Int, op string, r *big.Int) *big.Int {
		switch op {
		case "+":
			return new(big.Int).Add(l, r)
		case "-":
			return new(big.Int).Sub(l, r)
		default:
			return new(big.Int).Mul(l, r)
		}
	}
	if op2 == "*" && op1 != "*" {
		return apply(x, op1, apply(y, op2, z))
	}
	return apply(apply(x, op1, y), op2, z)
}
