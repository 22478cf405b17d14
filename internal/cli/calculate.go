package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/numcalc/internal/bigint"
	"github.com/agbru/numcalc/internal/config"
	"github.com/agbru/numcalc/internal/engine"
	"github.com/agbru/numcalc/internal/ui"
)

// PrintExecutionConfig prints the run parameters and environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	arg := cfg.Argument
	if arg == "" {
		arg = "(none)"
	}
	fmt.Fprintf(out, "Evaluating %s%s%s at x = %s%s%s with k = %s%d%s and a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Function, ui.ColorReset(),
		ui.ColorMagenta(), arg, ui.ColorReset(),
		ui.ColorMagenta(), cfg.Iterations, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Karatsuba threshold: %s%d%s limbs.\n",
		ui.ColorCyan(), bigint.KaratsubaThreshold(), ui.ColorReset())
}

// PrintExecutionMode describes whether one function or several run.
func PrintExecutionMode(evaluators []engine.Evaluator, out io.Writer) {
	var modeDesc string
	switch len(evaluators) {
	case 0:
		modeDesc = "nothing to evaluate"
	case 1:
		modeDesc = fmt.Sprintf("Single evaluation of %s%s%s (%s)",
			ui.ColorGreen(), evaluators[0].Name(), ui.ColorReset(), evaluators[0].Description())
	default:
		modeDesc = fmt.Sprintf("Concurrent evaluation of %d functions", len(evaluators))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
