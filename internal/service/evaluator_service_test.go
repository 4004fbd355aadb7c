package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/bigcalc/internal/arith"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/pkg/bigint"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()
	svc := NewEvaluatorService(arith.NewDefaultFactory(), 30)

	tests := []struct {
		name       string
		expression string
		scope      expr.Scope
		expected   string
		checkErr   func(error) bool
	}{
		{
			name:       "simple sum",
			expression: "999 + 1",
			expected:   "1000",
		},
		{
			name:       "uses scope",
			expression: "ans * ans",
			scope:      expr.Scope{"ans": bigint.MustParse("-12")},
			expected:   "144",
		},
		{
			name:       "syntax error",
			expression: "1 +",
			checkErr:   apperrors.IsInputError,
		},
		{
			name:       "literal over the limit",
			expression: "1 + " + strings.Repeat("9", 31),
			checkErr:   func(err error) bool { return errors.Is(err, ErrOperandTooLarge) && apperrors.IsInputError(err) },
		},
		{
			name:       "leading zeros do not count",
			expression: strings.Repeat("0", 40) + "7 * 6",
			expected:   "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := svc.Evaluate(context.Background(), tt.expression, tt.scope)
			if tt.checkErr != nil {
				if err == nil || !tt.checkErr(err) {
					t.Fatalf("Evaluate(%q) error = %v", tt.expression, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate(%q): %v", tt.expression, err)
			}
			if got.String() != tt.expected {
				t.Errorf("Evaluate(%q) = %s, want %s", tt.expression, got, tt.expected)
			}
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()
	svc := NewEvaluatorService(arith.NewDefaultFactory(), 0)

	tests := []struct {
		op, a, b string
		expected string
		wantErr  error
	}{
		{"add", "123456789123456789", "-987654321", "123456788135802468", nil},
		{"sub", "5", "8", "-3", nil},
		{"mul", "-99999999999999999999", "99999999999999999999", "-9999999999999999999800000000000000000001", nil},
		{"mul", "12", "x", "", bigint.ErrFormat},
		{"div", "1", "2", "", arith.ErrUnknownOperation},
	}
	for _, tt := range tests {
		t.Run(tt.op+" "+tt.a+" "+tt.b, func(t *testing.T) {
			t.Parallel()
			got, err := svc.Apply(context.Background(), tt.op, tt.a, tt.b)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Apply error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if got.String() != tt.expected {
				t.Errorf("Apply(%s, %s, %s) = %s, want %s", tt.op, tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestApplyNamesBadOperand(t *testing.T) {
	t.Parallel()
	svc := NewEvaluatorService(arith.NewDefaultFactory(), 0)
	_, err := svc.Apply(context.Background(), "add", "1", "2x")
	if err == nil || !strings.HasPrefix(err.Error(), "operand b: ") {
		t.Fatalf("Apply error = %v, want it to name operand b", err)
	}
	if !apperrors.IsInputError(err) {
		t.Errorf("IsInputError(%v) = false", err)
	}
}

func TestApplyOperandLimit(t *testing.T) {
	t.Parallel()
	svc := NewEvaluatorService(arith.NewDefaultFactory(), 5)

	_, err := svc.Apply(context.Background(), "add", "1", "123456")
	var valErr apperrors.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if valErr.Field != "b" || valErr.Value != 6 {
		t.Errorf("ValidationError = %+v", valErr)
	}
	if _, err := svc.Apply(context.Background(), "add", "-12345", "00000000001"); err != nil {
		t.Errorf("operands at the limit rejected: %v", err)
	}
}

func TestApplyCanceled(t *testing.T) {
	t.Parallel()
	svc := NewEvaluatorService(arith.NewDefaultFactory(), 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Apply(ctx, "add", "1", "2"); !errors.Is(err, context.Canceled) {
		t.Errorf("Apply on canceled context = %v", err)
	}
}

func TestOperations(t *testing.T) {
	t.Parallel()
	svc := NewEvaluatorService(arith.NewDefaultFactory(), 0)
	var symbols []string
	for _, op := range svc.Operations() {
		symbols = append(symbols, op.Name()+op.Symbol())
	}
	if got := strings.Join(symbols, " "); got != "add+ mul* sub-" {
		t.Errorf("Operations() = %q", got)
	}
}

func TestMetricsRecorded(t *testing.T) {
	t.Parallel()
	svc := NewEvaluatorService(arith.NewDefaultFactory(), 0)
	before := testutil.ToFloat64(operationsTotal.WithLabelValues("unknown", "error"))
	_, _ = svc.Apply(context.Background(), "pow", "2", "3")
	after := testutil.ToFloat64(operationsTotal.WithLabelValues("unknown", "error"))
	if after < before+1 {
		t.Errorf("unknown operation not counted: before %v after %v", before, after)
	}
}
