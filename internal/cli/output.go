package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/pkg/models"
)

// OutputConfig controls how batch results are rendered.
type OutputConfig struct {
	// OutputFile, if set, receives a full (never truncated) copy of the results.
	OutputFile string
	// JSON prints a JSON array instead of text.
	JSON bool
	// Quiet prints only the values, one per line.
	Quiet bool
	// Verbose disables truncation of long values.
	Verbose bool
}

// DisplayResults writes the results of a batch to out in the format chosen
// by cfg, then saves them to cfg.OutputFile when it is set. Failed
// expressions are reported inline; their exit status is the caller's
// concern.
func DisplayResults(out io.Writer, results []orchestration.EvaluationResult, cfg OutputConfig) error {
	switch {
	case cfg.JSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ToResponses(results)); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	case cfg.Quiet:
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintln(out, "error")
				continue
			}
			fmt.Fprintln(out, res.Value.String())
		}
	default:
		truncated := false
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(out, "%s%s%s = %serror: %v%s\n",
					ui.ColorOperator(), res.Expression, ui.ColorReset(),
					ui.ColorError(), unwrapEvaluation(res.Err), ui.ColorReset())
				continue
			}
			value := FormatValue(res.Value, cfg.Verbose)
			truncated = truncated || (!cfg.Verbose && res.Value.DigitCount() > TruncationLimit)
			fmt.Fprintf(out, "%s%s%s = %s%s%s\n",
				ui.ColorOperator(), res.Expression, ui.ColorReset(),
				ui.ColorValue(), value, ui.ColorReset())
		}
		if truncated {
			printTruncationTip(out)
		}
	}

	if cfg.OutputFile == "" {
		return nil
	}
	if err := WriteResultsToFile(results, cfg.OutputFile); err != nil {
		return err
	}
	if !cfg.Quiet && !cfg.JSON {
		fmt.Fprintf(out, "%sResults saved to: %s%s\n", ui.ColorMuted(), cfg.OutputFile, ui.ColorReset())
	}
	return nil
}

// WriteResultsToFile saves full results to path, creating parent
// directories as needed. A ".json" extension selects the JSON format;
// anything else gets a commented text file.
func WriteResultsToFile(results []orchestration.EvaluationResult, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if filepath.Ext(path) == ".json" {
		enc := json.NewEncoder(file)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ToResponses(results)); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	fmt.Fprintf(file, "# bigcalc results\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Expressions: %d\n\n", len(results))
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(file, "%s = error: %v\n", res.Expression, unwrapEvaluation(res.Err))
			continue
		}
		fmt.Fprintf(file, "%s = %s\n", res.Expression, res.Value)
	}
	return file.Close()
}

// ToResponses converts batch results to their wire representation.
func ToResponses(results []orchestration.EvaluationResult) []models.EvaluateResponse {
	out := make([]models.EvaluateResponse, len(results))
	for i, res := range results {
		out[i] = models.EvaluateResponse{
			Expression: res.Expression,
			Duration:   res.Duration.String(),
		}
		if res.Err != nil {
			out[i].Error = unwrapEvaluation(res.Err).Error()
			continue
		}
		out[i].Result = res.Value.String()
		out[i].Digits = res.Value.DigitCount()
	}
	return out
}

// unwrapEvaluation drops the expression prefix added by EvaluationError, for
// output that already shows the expression.
func unwrapEvaluation(err error) error {
	var evalErr apperrors.EvaluationError
	if errors.As(err, &evalErr) {
		return evalErr.Cause
	}
	return err
}
