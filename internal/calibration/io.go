package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/numcalc/internal/config"
	"github.com/agbru/numcalc/internal/format"
	"github.com/agbru/numcalc/internal/ui"
)

func printCalibrationResults(out io.Writer, results []calibrationResult, bestThreshold int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sThreshold%s    │ %sTotal time%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 25))
	for _, res := range results {
		label := fmt.Sprintf("%d limbs", res.Threshold)
		duration := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			duration = format.FormatExecutionDuration(res.Duration)
		}
		highlight := ""
		if res.Threshold == bestThreshold && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-12s%s │ %s%s%s%s\n", ui.ColorCyan(), label, ui.ColorReset(), ui.ColorYellow(), duration, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

func printCalibrationOutput(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%sAuto-calibration%s: Karatsuba threshold=%s%d%s limbs\n",
		ui.ColorGreen(), ui.ColorReset(), ui.ColorYellow(), cfg.KaratsubaThreshold, ui.ColorReset())
}
