// Package service is the single entry point through which the CLI, the REPL
// and the HTTP API evaluate arithmetic. It applies the operand size limit and
// records metrics, traces and debug logs for every call.
package service

//go:generate mockgen -source=evaluator_service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/internal/arith"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/pkg/bigint"
)

// ErrOperandTooLarge is returned when an operand has more digits than the
// configured limit.
var ErrOperandTooLarge = errors.New("operand too large")

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigcalc_operations_total",
			Help: "The total number of evaluations and operations processed",
		},
		[]string{"operation", "status"},
	)
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "bigcalc_operation_duration_seconds",
			Help: "The duration of evaluations and operations in seconds",
		},
		[]string{"operation"},
	)
)

// Service evaluates expressions and single operations.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Evaluate compiles and evaluates an expression. Identifiers are resolved
	// in scope, which may be nil.
	Evaluate(ctx context.Context, expression string, scope expr.Scope) (bigint.Int, error)

	// Apply parses a and b and applies the operation registered under op
	// ("add", "sub", "mul").
	Apply(ctx context.Context, op string, a, b string) (bigint.Int, error)

	// Operations lists the registered operations.
	Operations() []arith.Operation
}

// EvaluatorService is the default Service.
type EvaluatorService struct {
	ops       arith.OperationFactory
	maxDigits int
}

// Ensure EvaluatorService implements Service interface.
var _ Service = (*EvaluatorService)(nil)

// NewEvaluatorService creates a service dispatching through ops. maxDigits
// bounds the width of every operand; zero disables the limit.
func NewEvaluatorService(ops arith.OperationFactory, maxDigits int) *EvaluatorService {
	return &EvaluatorService{ops: ops, maxDigits: maxDigits}
}

// Evaluate implements Service.
func (s *EvaluatorService) Evaluate(ctx context.Context, expression string, scope expr.Scope) (result bigint.Int, err error) {
	ctx, span := otel.Tracer("bigcalc/service").Start(ctx, "Evaluate")
	defer span.End()
	start := time.Now()
	defer func() { s.observe(span, "evaluate", start, result, err) }()

	prog, err := expr.CompileWith(expression, s.ops)
	if err != nil {
		return bigint.Int{}, err
	}
	if err = s.checkDigits("expression", prog.MaxLiteralDigits()); err != nil {
		return bigint.Int{}, err
	}
	return prog.Eval(ctx, scope)
}

// Apply implements Service.
func (s *EvaluatorService) Apply(ctx context.Context, op string, a, b string) (result bigint.Int, err error) {
	ctx, span := otel.Tracer("bigcalc/service").Start(ctx, "Apply")
	defer span.End()
	start := time.Now()
	label := "unknown"
	defer func() { s.observe(span, label, start, result, err) }()

	operation, err := s.ops.Get(op)
	if err != nil {
		return bigint.Int{}, err
	}
	label = operation.Name()
	x, err := s.operand("a", a)
	if err != nil {
		return bigint.Int{}, err
	}
	y, err := s.operand("b", b)
	if err != nil {
		return bigint.Int{}, err
	}
	if err = ctx.Err(); err != nil {
		return bigint.Int{}, err
	}
	return operation.Apply(x, y), nil
}

// Operations implements Service.
func (s *EvaluatorService) Operations() []arith.Operation {
	names := s.ops.List()
	ops := make([]arith.Operation, 0, len(names))
	for _, name := range names {
		if op, err := s.ops.Get(name); err == nil {
			ops = append(ops, op)
		}
	}
	return ops
}

func (s *EvaluatorService) operand(field, text string) (bigint.Int, error) {
	v, err := bigint.Parse(text)
	if err != nil {
		return bigint.Int{}, apperrors.WrapError(err, "operand %s", field)
	}
	if err := s.checkDigits(field, v.DigitCount()); err != nil {
		return bigint.Int{}, err
	}
	return v, nil
}

func (s *EvaluatorService) checkDigits(field string, digits int) error {
	if s.maxDigits > 0 && digits > s.maxDigits {
		return apperrors.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("operand has %d digits, the limit is %d", digits, s.maxDigits),
			Value:   digits,
			Err:     ErrOperandTooLarge,
		}
	}
	return nil
}

// observe records the outcome of a call on the span, the Prometheus
// collectors and the debug log.
func (s *EvaluatorService) observe(span trace.Span, operation string, start time.Time, result bigint.Int, err error) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("bigcalc.result_digits", result.DigitCount()))
	}
	span.SetAttributes(attribute.String("bigcalc.operation", operation))
	operationsTotal.WithLabelValues(operation, status).Inc()
	operationDuration.WithLabelValues(operation).Observe(duration)

	log.Debug().
		Str("operation", operation).
		Int("digits", result.DigitCount()).
		Float64("duration", duration).
		Str("status", status).
		Msg("evaluation completed")
}
