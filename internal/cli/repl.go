package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/service"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/pkg/bigint"
)

// AnsVariable is bound to the last successfully evaluated value.
const AnsVariable = "ans"

var assignmentPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)$`)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout bounds the evaluation of each line.
	Timeout time.Duration
	// Verbose disables truncation of long values.
	Verbose bool
}

// REPL is an interactive calculator session. Variables assigned with
// "name = expr" live for the whole session.
type REPL struct {
	config REPLConfig
	svc    service.Service
	vars   expr.Scope
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a session evaluating through svc.
func NewREPL(svc service.Service, config REPLConfig) *REPL {
	return &REPL{
		config: config,
		svc:    svc,
		vars:   make(expr.Scope),
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the session until "exit" or end of input.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorPrompt()+"bigcalc> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorError(), err, ui.ColorReset())
			return
		}
		eof := err != nil

		input = strings.TrimSpace(input)
		if input != "" && !r.processCommand(input) {
			return
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%sbigcalc%s - arbitrary-precision integer calculator\n", ui.ColorBold(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sEnter an expression, or:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sname = expr%s   - Evaluate expr and store it in name\n", ui.ColorOperator(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s%s%s           - The last result\n", ui.ColorOperator(), AnsVariable, ui.ColorReset())
	fmt.Fprintf(r.out, "  %svars%s          - List variables\n", ui.ColorOperator(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sclear%s         - Forget all variables\n", ui.ColorOperator(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sops%s           - List supported operators\n", ui.ColorOperator(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sverbose%s       - Toggle display of full values\n", ui.ColorOperator(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorOperator(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s   - Leave interactive mode\n", ui.ColorOperator(), ui.ColorReset(), ui.ColorOperator(), ui.ColorReset())
}

// processCommand runs one line. It returns false when the session must end.
func (r *REPL) processCommand(input string) bool {
	switch strings.ToLower(input) {
	case "help", "h", "?":
		r.printHelp()
	case "vars":
		r.cmdVars()
	case "clear":
		r.vars = make(expr.Scope)
		fmt.Fprintln(r.out, "Variables cleared.")
	case "ops":
		r.cmdOps()
	case "verbose":
		r.config.Verbose = !r.config.Verbose
		fmt.Fprintf(r.out, "Full values: %s%v%s\n", ui.ColorValue(), r.config.Verbose, ui.ColorReset())
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorValue(), ui.ColorReset())
		return false
	default:
		if m := assignmentPattern.FindStringSubmatch(input); m != nil {
			r.assign(m[1], m[2])
		} else {
			r.evaluate(input)
		}
	}
	return true
}

// evaluate runs src against the session variables and binds ans.
func (r *REPL) evaluate(src string) (bigint.Int, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	start := time.Now()
	v, err := r.svc.Evaluate(ctx, src, r.vars)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		return bigint.Int{}, false
	}
	r.vars[AnsVariable] = v

	fmt.Fprintf(r.out, "= %s%s%s", ui.ColorValue(), FormatValue(v, r.config.Verbose), ui.ColorReset())
	if d := time.Since(start); d >= time.Second {
		fmt.Fprintf(r.out, " %s(%s)%s", ui.ColorMuted(), ui.FormatExecutionDuration(d), ui.ColorReset())
	}
	fmt.Fprintln(r.out)
	return v, true
}

func (r *REPL) assign(name, src string) {
	if strings.TrimSpace(src) == "" {
		fmt.Fprintf(r.out, "%sUsage: %s = <expression>%s\n", ui.ColorError(), name, ui.ColorReset())
		return
	}
	if v, ok := r.evaluate(src); ok {
		r.vars[name] = v
	}
}

func (r *REPL) cmdVars() {
	if len(r.vars) == 0 {
		fmt.Fprintln(r.out, "No variables defined.")
		return
	}
	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "  %s%-10s%s = %s%s%s\n", ui.ColorOperator(), name, ui.ColorReset(),
			ui.ColorValue(), FormatValue(r.vars[name], r.config.Verbose), ui.ColorReset())
	}
}

func (r *REPL) cmdOps() {
	fmt.Fprintf(r.out, "%sOperators:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, op := range r.svc.Operations() {
		fmt.Fprintf(r.out, "  %s%s%s  %s\n", ui.ColorOperator(), op.Symbol(), ui.ColorReset(), op.Name())
	}
	fmt.Fprintf(r.out, "  %s( )%s  grouping, unary %s-%s and %s+%s\n",
		ui.ColorOperator(), ui.ColorReset(), ui.ColorOperator(), ui.ColorReset(), ui.ColorOperator(), ui.ColorReset())
}
