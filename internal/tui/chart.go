package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/numcalc/internal/engine"
	"github.com/agbru/numcalc/internal/format"
)

// sparklineWidth is the width of the "CPU 100.0% " label plus borders.
const sparklineWidth = 17

// ChartModel plots stable digits per schedule step, overall progress and
// system load.
type ChartModel struct {
	stableHistory   *samples
	cpuHistory      *samples
	memHistory      *samples
	lastStep        map[int]uint
	averageProgress float64
	eta             time.Duration
	iterations      uint
	stableDigits    int
	done            bool
	elapsed         time.Duration
	width           int
	height          int
}

// NewChartModel creates an empty chart.
func NewChartModel() ChartModel {
	return ChartModel{
		stableHistory: newSamples(64),
		cpuHistory:    newSamples(32),
		memHistory:    newSamples(32),
		lastStep:      make(map[int]uint),
		stableDigits:  -1,
	}
}

// SetSize updates dimensions and resizes the history buffers.
func (c *ChartModel) SetSize(w, h int) {
	c.width, c.height = w, h
	if n := w - sparklineWidth; n > 0 {
		c.cpuHistory.resize(n)
		c.memHistory.resize(n)
	}
	if n := 2 * (w - 4); n > 0 {
		c.stableHistory.resize(n)
	}
}

// AddDataPoint records a progress update. A new stable digit sample is
// plotted once per schedule step.
func (c *ChartModel) AddDataPoint(msg ProgressMsg) {
	c.averageProgress = msg.AverageProgress
	c.eta = msg.ETA
	if msg.Iterations == 0 || c.lastStep[msg.EvaluatorIndex] == msg.Iterations {
		return
	}
	c.lastStep[msg.EvaluatorIndex] = msg.Iterations
	c.iterations = msg.Iterations
	c.stableDigits = msg.StableDigits
	if msg.StableDigits >= 0 {
		c.stableHistory.push(float64(msg.StableDigits))
	}
}

// UpdateSysStats records a CPU and memory sample.
func (c *ChartModel) UpdateSysStats(cpuPct, memPct float64) {
	c.cpuHistory.push(cpuPct)
	c.memHistory.push(memPct)
}

// SetDone freezes the chart with the total elapsed time.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.elapsed = elapsed
	c.averageProgress = 1
}

// Reset clears all history.
func (c *ChartModel) Reset() {
	c.stableHistory.clear()
	c.cpuHistory.clear()
	c.memHistory.clear()
	c.lastStep = make(map[int]uint)
	c.averageProgress = 0
	c.eta = 0
	c.iterations = 0
	c.stableDigits = -1
	c.done = false
	c.elapsed = 0
}

// normalizedStable scales the stable digit history to 0..100. An exact
// sample is drawn at the top.
func (c ChartModel) normalizedStable() []float64 {
	values := c.stableHistory.values()
	peak := 0.0
	for _, v := range values {
		if v < engine.ExactDigits && v > peak {
			peak = v
		}
	}
	out := make([]float64, len(values))
	for i, v := range values {
		switch {
		case v >= engine.ExactDigits || peak == 0:
			out[i] = 100
		default:
			out[i] = v / peak * 100
		}
	}
	return out
}

func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 22
	if barWidth < 5 {
		return ""
	}
	p := min(max(c.averageProgress, 0), 1)
	filled := int(p * float64(barWidth))
	bar := chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf(" %s %5.1f%%", bar, p*100)
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	title := "Convergence"
	if c.iterations > 0 {
		title += fmt.Sprintf("  k=%d stable=%s", c.iterations, stableText(c.stableDigits))
	}
	b.WriteString(titleStyle.Render(title))

	showSparklines := c.height >= 10
	rows := c.height - 4
	if showSparklines {
		rows -= 2
	}
	if rows > 0 {
		for _, line := range brailleRows(c.normalizedStable(), max(c.width-4, 1), rows) {
			b.WriteString("\n " + chartBarStyle.Render(line))
		}
	}

	b.WriteString("\n")
	b.WriteString(c.renderProgressBar())
	if c.done {
		b.WriteString(metricLabelStyle.Render("  Done in: ") + metricValueStyle.Render(format.FormatExecutionDuration(c.elapsed)))
	} else {
		b.WriteString(metricLabelStyle.Render("  ETA: ") + metricValueStyle.Render(format.FormatETA(c.eta)))
	}

	if showSparklines {
		fmt.Fprintf(&b, "\n %s %s", metricLabelStyle.Render(fmt.Sprintf("CPU %5.1f%%", c.cpuHistory.latest())),
			cpuSparklineStyle.Render(sparkline(c.cpuHistory.values())))
		fmt.Fprintf(&b, "\n %s %s", metricLabelStyle.Render(fmt.Sprintf("MEM %5.1f%%", c.memHistory.latest())),
			memSparklineStyle.Render(sparkline(c.memHistory.values())))
	}

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}
