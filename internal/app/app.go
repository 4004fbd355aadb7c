package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/agbru/bigcalc/internal/arith"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/server"
	"github.com/agbru/bigcalc/internal/service"
	"github.com/agbru/bigcalc/internal/ui"
)

// Application represents the bigcalc application instance.
// It encapsulates the configuration and provides methods to run
// the application in its batch, interactive and server modes.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Service evaluates expressions for every mode.
	Service service.Service
	// ErrWriter receives diagnostics, the spinner and the batch summary.
	ErrWriter io.Writer
	// Stdin is read for "-f -" and by the REPL.
	Stdin io.Reader
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Service:   service.NewEvaluatorService(arith.GlobalFactory(), cfg.MaxDigits),
		ErrWriter: errWriter,
		Stdin:     os.Stdin,
	}, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	// Validated by config.ParseConfig.
	if level, err := logging.ParseLevel(a.Config.LogLevel); err == nil {
		logging.SetLevel(level)
	}

	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.ServerMode:
		return a.runServer()
	case a.Config.Interactive:
		return a.runREPL(out)
	default:
		return a.runBatch(ctx, out)
	}
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Service, a.Config, server.WithVersionInfo(GetVersionInfo()))
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive REPL mode.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Service, cli.REPLConfig{
		Timeout: a.Config.Timeout,
		Verbose: a.Config.Verbose,
	})
	repl.SetInput(a.Stdin)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runBatch evaluates every expression from the arguments and the -f file
// under the global timeout, prints the results to out and the summary to
// ErrWriter.
func (a *Application) runBatch(ctx context.Context, out io.Writer) int {
	exprs, err := cli.LoadExpressions(a.Config.File, a.Config.Expressions, a.Stdin)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorInput
	}
	if len(exprs) == 0 {
		fmt.Fprintln(a.ErrWriter, "Error: no expressions to evaluate. Pass them as arguments, read them with -f, or use -interactive.")
		return apperrors.ExitErrorConfig
	}

	ctx, lifecycle := SetupLifecycle(ctx, a.Config.Timeout)
	defer lifecycle.Cleanup()

	stopSpinner := func() {}
	if !a.Config.Quiet && !a.Config.JSONOutput && cli.IsTerminal(a.ErrWriter) {
		stopSpinner = cli.StartSpinner(a.ErrWriter, len(exprs))
	}
	start := time.Now()
	batch := orchestration.ExecuteBatch(ctx, a.Service, exprs, a.Config.Concurrency)
	stopSpinner()

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		JSON:       a.Config.JSONOutput,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayResults(out, batch.Results, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return apperrors.HandleEvaluationError(ctxErr, time.Since(start), a.ErrWriter, ui.ErrorColors{})
	}

	summaryOut := a.ErrWriter
	if a.Config.Quiet {
		summaryOut = io.Discard
	}
	return orchestration.AnalyzeResults(batch, summaryOut)
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
