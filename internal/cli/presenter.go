package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/format"
	"github.com/agbru/numcalc/internal/metrics"
	"github.com/agbru/numcalc/internal/orchestration"
	"github.com/agbru/numcalc/internal/progress"
	"github.com/agbru/numcalc/internal/ui"
)

// CLIColorProvider supplies the active theme's colors to apperrors.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIProgressReporter shows a spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEvaluators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numEvaluators, out)
}

// CLIResultPresenter renders results for the terminal.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per evaluation. Padding is computed
// on the raw text so ANSI colors do not skew alignment.
func (p CLIResultPresenter) PresentComparisonTable(results []orchestration.EvaluationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Evaluation Summary ---\n")

	headers := [...]string{"Function", "Duration", "k", "Stable"}
	widths := [len(headers)]int{}
	rows := make([][len(headers)]string, len(results))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for i, res := range results {
		rows[i][0] = Label(res)
		rows[i][1] = p.FormatDuration(res.Duration)
		if res.Err == nil {
			rows[i][2] = fmt.Sprint(res.Result.Iterations)
			rows[i][3] = stableLabel(res.Result.StableDigits)
		}
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], len([]rune(cell)))
		}
	}

	for i, h := range headers {
		fmt.Fprintf(out, "%s%s%s%s   ", ui.ColorUnderline(), h, ui.ColorReset(), padRight("", widths[i]-len(h)))
	}
	fmt.Fprintf(out, "%sStatus%s\n", ui.ColorUnderline(), ui.ColorReset())

	colors := [len(headers)]func() string{ui.ColorBlue, ui.ColorYellow, ui.ColorGrey, ui.ColorCyan}
	for i, res := range results {
		for j, cell := range rows[i] {
			fmt.Fprintf(out, "%s%s   ", ui.Paint(colors[j](), cell), padRight("", widths[j]-len([]rune(cell))))
		}
		if res.Err != nil {
			fmt.Fprintf(out, "%s❌ Failure (%v)%s\n", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			fmt.Fprintf(out, "%s✅ Success%s\n", ui.ColorGreen(), ui.ColorReset())
		}
	}
}

// PresentVerification prints the 2k re-check of each result.
func (CLIResultPresenter) PresentVerification(checks []orchestration.Verification, out io.Writer) {
	fmt.Fprintf(out, "\n--- Verification ---\n")
	for _, c := range checks {
		switch {
		case c.Skipped:
			fmt.Fprintf(out, "  %-8s %sskipped (%v)%s\n", c.Name, ui.ColorYellow(), c.Err, ui.ColorReset())
		case c.Mismatch():
			fmt.Fprintf(out, "  %-8s %s✗ k=%d claimed %s digits, k=%d agrees on %s%s\n",
				c.Name, ui.ColorRed(), c.Iterations, stableLabel(c.Claimed), c.CheckIterations, stableLabel(c.Agreed), ui.ColorReset())
		default:
			fmt.Fprintf(out, "  %-8s %s✓ k=%d and k=%d agree on %s digits%s\n",
				c.Name, ui.ColorGreen(), c.Iterations, c.CheckIterations, stableLabel(c.Agreed), ui.ColorReset())
		}
	}
}

func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult delegates to DisplayResult.
func (CLIResultPresenter) PresentResult(result orchestration.EvaluationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

// FormatDuration formats d, showing "< 1µs" for zero.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// HandleError prints err and returns its exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats prints the memory used by a run.
func DisplayMemoryStats(after metrics.MemorySnapshot, delta metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(after.HeapAlloc))
	fmt.Fprintf(out, "  Allocated:       %s\n", format.FormatBytes(delta.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.GCCycles)
	fmt.Fprintf(out, "  GC pause:        %.2fms\n", float64(delta.PauseNs)/1e6)
}
