package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/bigcalc/internal/ui"
)

// setCustomUsage installs a colored usage screen on fs.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// Respect NO_COLOR even before app initialization
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()

		fmt.Fprintf(out, "\n%sbigcalc%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Arbitrary-precision integer calculator.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags] [expression ...]\n\n", t.Prompt, t.Reset, fs.Name())
		fmt.Fprintf(out, "%sExamples:%s\n", t.Prompt, t.Reset)
		fmt.Fprintf(out, "  %s '123456789 * 987654321' '-5 + 3'\n", fs.Name())
		fmt.Fprintf(out, "  %s -f batch.txt -json\n\n", fs.Name())
		fmt.Fprintf(out, "%sFlags:%s\n", t.Prompt, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := "-" + f.Name
			if len(name) > 0 {
				flagSig += " " + name
			}

			fmt.Fprintf(out, "  %s%-22s%s %s", t.Operator, flagSig, t.Reset, usage)

			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Muted, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintln(out)
	}
}
