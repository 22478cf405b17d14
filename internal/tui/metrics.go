package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/numcalc/internal/format"
	"github.com/agbru/numcalc/internal/metrics"
)

// MetricsModel displays runtime memory, throughput and, once an
// evaluation finishes, its convergence indicators.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	processRSS   uint64
	speed        float64 // progress per second, smoothed
	lastProgress float64
	lastUpdate   time.Time
	indicators   *metrics.Indicators
	width        int
	height       int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{lastUpdate: time.Now()}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats stores a runtime memory sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateProcessRSS stores the resident size of the process.
func (m *MetricsModel) UpdateProcessRSS(rss uint64) {
	m.processRSS = rss
}

// UpdateProgress updates the exponentially smoothed speed.
func (m *MetricsModel) UpdateProgress(progress float64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt <= 0.05 {
		return
	}
	if dp := progress - m.lastProgress; dp > 0 {
		instant := dp / dt
		if m.speed > 0 {
			m.speed = 0.7*m.speed + 0.3*instant
		} else {
			m.speed = instant
		}
	}
	m.lastProgress = progress
	m.lastUpdate = now
}

// UpdateIndicators stores the indicators of a finished evaluation.
func (m *MetricsModel) UpdateIndicators(ind *metrics.Indicators) {
	m.indicators = ind
}

func (m MetricsModel) remaining() string {
	if m.speed <= 0 {
		return "-"
	}
	return format.FormatETA(time.Duration((1 - m.lastProgress) / m.speed * float64(time.Second)))
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	heapStr := metricValueStyle.Render(format.FormatBytes(m.alloc) + " / " + format.FormatBytes(m.heapSys))
	gcStr := metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6))
	pipe := metricLabelStyle.Render(" | ")
	fmt.Fprintf(&rows, "  %s %s%s%s %s", metricLabelStyle.Render("Heap:"), heapStr, pipe, metricLabelStyle.Render("GC:"), gcStr)

	colWidth := (m.width - 6) / 2
	leftCol := []string{
		formatMetricCol("Remaining:", m.remaining(), colWidth),
	}
	rightCol := []string{
		formatMetricCol("Goroutines:", fmt.Sprint(m.numGoroutine), colWidth),
	}
	if m.processRSS > 0 {
		leftCol = append(leftCol, formatMetricCol("RSS:", format.FormatBytes(m.processRSS), colWidth))
		rightCol = append(rightCol, "")
	}

	if ind := m.indicators; ind != nil {
		leftCol = append(leftCol,
			formatMetricCol("k / steps:", fmt.Sprintf("%d / %d", ind.Iterations, ind.Steps), colWidth),
			formatMetricCol("Terms/s:", metrics.FormatRate(ind.TermsPerSecond, "terms"), colWidth),
		)
		rightCol = append(rightCol,
			formatMetricCol("Stable:", ind.StableDigitsString(), colWidth),
			formatMetricCol("Limbs:", fmt.Sprintf("%d + %d", ind.NumLimbs, ind.DenLimbs), colWidth),
		)
	}

	for i := range leftCol {
		rows.WriteString("\n")
		rows.WriteString(leftCol[i])
		rows.WriteString(rightCol[i])
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-11s", label)),
		metricValueStyle.Render(value))
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
