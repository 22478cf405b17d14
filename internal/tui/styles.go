package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/numcalc/internal/ui"
)

// Dashboard styles. applyTheme rebuilds them from ui.GetCurrentTUITheme.
var (
	panelStyle, headerStyle, titleStyle   lipgloss.Style
	versionStyle, elapsedStyle            lipgloss.Style
	logTimeStyle, logFunctionStyle        lipgloss.Style
	logProgressStyle, logSuccessStyle     lipgloss.Style
	logErrorStyle                         lipgloss.Style
	metricLabelStyle, metricValueStyle    lipgloss.Style
	chartBarStyle, chartEmptyStyle        lipgloss.Style
	cpuSparklineStyle, memSparklineStyle  lipgloss.Style
	footerKeyStyle, footerDescStyle       lipgloss.Style
	statusRunningStyle, statusPausedStyle lipgloss.Style
	statusDoneStyle, statusErrorStyle     lipgloss.Style
)

func init() {
	applyTheme()
}

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func bold(c lipgloss.TerminalColor) lipgloss.Style {
	return fg(c).Bold(true)
}

// applyTheme must run again after ui.InitTheme changes the palette.
func applyTheme() {
	t := ui.GetCurrentTUITheme()

	panelStyle = fg(t.Text).
		Background(t.Bg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)
	headerStyle = bold(t.Accent).Background(t.Bg).Padding(0, 1)
	titleStyle = bold(t.Accent)
	versionStyle = fg(t.Dim)
	elapsedStyle = fg(t.Accent)

	logTimeStyle = fg(t.Dim)
	logFunctionStyle = fg(t.Info)
	logProgressStyle = fg(t.Accent)
	logSuccessStyle = fg(t.Success)
	logErrorStyle = fg(t.Error)

	metricLabelStyle = fg(t.Dim)
	metricValueStyle = bold(t.Accent)

	chartBarStyle = fg(t.Accent)
	chartEmptyStyle = fg(t.Dim)
	cpuSparklineStyle = fg(t.Accent)
	memSparklineStyle = fg(t.Warning)

	footerKeyStyle = bold(t.Accent)
	footerDescStyle = fg(t.Dim)
	statusRunningStyle = bold(t.Success)
	statusPausedStyle = bold(t.Warning)
	statusDoneStyle = bold(t.Accent)
	statusErrorStyle = bold(t.Error)
}
