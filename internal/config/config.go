// Package config provides the configuration management for bigcalc. It
// defines the configuration structure, parses command-line arguments and
// merges them with an optional TOML file and BIGCALC_* environment variables.
//
// Precedence, lowest first: defaults, config file, environment, flags.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"fortio.org/safecast"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
)

const (
	// EnvPrefix is the prefix for all environment variables used by bigcalc.
	EnvPrefix = "BIGCALC_"
)

// Default configuration values.
const (
	// DefaultTimeout bounds a whole batch, or a single REPL line.
	DefaultTimeout = 30 * time.Second
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultMaxDigits is the largest integer literal accepted by default.
	DefaultMaxDigits = 100_000
	// DefaultLogLevel is the default minimum log level.
	DefaultLogLevel = "info"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Expressions are the positional arguments, evaluated in order.
	Expressions []string
	// File names a file with one expression per line; "-" reads stdin.
	File string
	// Timeout bounds the evaluation of the whole batch.
	Timeout time.Duration
	// Concurrency caps the number of expressions evaluated at once.
	// Zero means one per CPU.
	Concurrency int
	// MaxDigits rejects integer literals wider than this. Zero disables the
	// check.
	MaxDigits int
	// Verbose prints full values instead of truncating long results.
	Verbose bool
	// JSONOutput prints results as a JSON array.
	JSONOutput bool
	// Quiet prints only the values, one per line.
	Quiet bool
	// OutputFile, if set, also writes results to this path.
	OutputFile string
	// NoColor disables colored output. NO_COLOR is honoured as well.
	NoColor bool
	// Interactive starts the REPL.
	Interactive bool
	// ServerMode starts the HTTP API.
	ServerMode bool
	// Port is the TCP port of the HTTP API.
	Port string
	// ConfigFile is the TOML file the configuration was loaded from, if any.
	ConfigFile string
	// LogLevel is the minimum level of structured log records.
	LogLevel string
	// ShowVersion prints build information and exits.
	ShowVersion bool
}

// Validate checks the semantic consistency of the configuration.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Concurrency < 0 {
		return apperrors.NewConfigError("concurrency cannot be negative: %d", c.Concurrency)
	}
	if c.MaxDigits < 0 {
		return apperrors.NewConfigError("max-digits cannot be negative: %d", c.MaxDigits)
	}
	if c.Interactive && c.ServerMode {
		return apperrors.NewConfigError("-interactive and -server are mutually exclusive")
	}
	if c.JSONOutput && c.Quiet {
		return apperrors.NewConfigError("-json and -q are mutually exclusive")
	}
	if _, err := ParsePort(c.Port); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	return nil
}

// ParsePort validates a TCP port given as text.
func ParsePort(port string) (uint16, error) {
	n, err := strconv.Atoi(port)
	if err != nil {
		return 0, apperrors.NewConfigError("invalid port %q", port)
	}
	p, err := safecast.Conv[uint16](n)
	if err != nil || p == 0 {
		return 0, apperrors.NewConfigError("port out of range: %d", n)
	}
	return p, nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig.
// After parsing it applies the config file and environment overrides for
// every flag that was not given explicitly, then validates the result.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage information are printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: flag.ErrHelp, a parse error or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.File, "f", "", "Read expressions from `file`, one per line (\"-\" for stdin).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum time allowed for the whole evaluation.")
	fs.IntVar(&config.Concurrency, "concurrency", 0, "Maximum expressions evaluated in parallel (0 = one per CPU).")
	fs.IntVar(&config.MaxDigits, "max-digits", DefaultMaxDigits, "Reject integer literals with more digits (0 = unlimited).")
	fs.BoolVar(&config.Verbose, "v", false, "Display full values instead of truncating long results.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the values.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.StringVar(&config.OutputFile, "output", "", "Also write results to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.StringVar(&config.ConfigFile, "config", "", "Load settings from a TOML `file`.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Minimum log level (debug, info, warn, error, disabled).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	config.Expressions = fs.Args()

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", config.ConfigFile)
	}
	if config.ConfigFile != "" {
		if err := applyFileConfig(&config, fs, config.ConfigFile); err != nil {
			fmt.Fprintln(errorWriter, "Configuration error:", err)
			return AppConfig{}, err
		}
	}

	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}
