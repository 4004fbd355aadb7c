// Package orchestration evaluates batches of expressions concurrently and
// summarises their outcome.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/parallel"
	"github.com/agbru/bigcalc/internal/service"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/pkg/bigint"
)

// EvaluationResult is the outcome of one expression of a batch.
type EvaluationResult struct {
	// Expression is the source text as given by the user.
	Expression string
	// Value is the result. It is zero when Err is set.
	Value bigint.Int
	// Duration is the time spent evaluating the expression.
	Duration time.Duration
	// Err is an apperrors.EvaluationError when the evaluation failed.
	Err error
}

// Batch holds the results of ExecuteBatch together with the failures its
// workers reported.
type Batch struct {
	// Results has one entry per expression, in input order.
	Results []EvaluationResult

	failures parallel.ErrorCollector
}

// Err returns the first failure reported by a worker, or nil.
func (b *Batch) Err() error { return b.failures.Err() }

// Failed returns the number of expressions that failed.
func (b *Batch) Failed() int { return b.failures.Count() }

// ExecuteBatch evaluates exprs with at most concurrency evaluations in
// flight (one per CPU when concurrency <= 0). Results are kept in input
// order. A failing expression does not stop the others; cancelling ctx does.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - svc: The service that evaluates each expression.
//   - exprs: The expressions to evaluate.
//   - concurrency: The maximum number of concurrent evaluations.
//
// Returns:
//   - *Batch: The results and the failures recorded while evaluating.
func ExecuteBatch(ctx context.Context, svc service.Service, exprs []string, concurrency int) *Batch {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(concurrency)
	b := &Batch{Results: make([]EvaluationResult, len(exprs))}

	for i, src := range exprs {
		g.Go(func() error {
			start := time.Now()
			var value bigint.Int
			err := ctx.Err()
			if err == nil {
				value, err = svc.Evaluate(ctx, src, nil)
			}
			res := EvaluationResult{
				Expression: src,
				Value:      value,
				Duration:   time.Since(start),
				Err:        apperrors.NewEvaluationError(src, err),
			}
			b.failures.SetError(res.Err)
			b.Results[i] = res
			return nil
		})
	}

	_ = g.Wait()
	return b
}

// AnalyzeResults writes a summary of a batch to out and returns the exit
// code the process should use: success when every expression evaluated,
// otherwise the code matching the first failure a worker reported.
//
// Failures are listed in a table; a fully successful batch is reported with
// a single status line.
func AnalyzeResults(b *Batch, out io.Writer) int {
	results := b.Results
	if b.Err() == nil {
		var total time.Duration
		for _, res := range results {
			total += res.Duration
		}
		fmt.Fprintf(out, "%sStatus: Success.%s %d expression(s) evaluated in %s%s%s.\n",
			ui.ColorValue(), ui.ColorReset(), len(results),
			ui.ColorMuted(), ui.FormatExecutionDuration(total), ui.ColorReset())
		return apperrors.ExitSuccess
	}

	fmt.Fprintf(out, "\n--- Failures ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%s#%s\t%sExpression%s\t%sDuration%s\t%sError%s\n",
		ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(),
		ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset())
	for i, res := range results {
		if res.Err == nil {
			continue
		}
		cause := res.Err
		if evalErr, ok := res.Err.(apperrors.EvaluationError); ok {
			cause = evalErr.Cause
		}
		fmt.Fprintf(tw, "%d\t%s%s%s\t%s\t%s%v%s\n", i+1,
			ui.ColorOperator(), res.Expression, ui.ColorReset(),
			ui.FormatExecutionDuration(res.Duration),
			ui.ColorError(), cause, ui.ColorReset())
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	fmt.Fprintf(out, "\nGlobal Status: Failure. %d of %d expression(s) failed.\n", b.Failed(), len(results))
	return apperrors.ExitCode(b.Err())
}
