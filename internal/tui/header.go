package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/numcalc/internal/format"
)

// HeaderModel is the title bar: program, version, evaluation target and
// elapsed time.
type HeaderModel struct {
	version  string
	target   string
	started  time.Time
	finished time.Time
	width    int
}

// NewHeaderModel creates a header for target, e.g. "sin(1/2) k=32".
func NewHeaderModel(version, target string) HeaderModel {
	return HeaderModel{version: version, target: target, started: time.Now()}
}

// SetDone stops the clock.
func (h *HeaderModel) SetDone() { h.finished = time.Now() }

// Reset restarts the clock.
func (h *HeaderModel) Reset() {
	h.started = time.Now()
	h.finished = time.Time{}
}

func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Elapsed is the running time, or the final time once SetDone was called.
func (h HeaderModel) Elapsed() time.Duration {
	if h.finished.IsZero() {
		return time.Since(h.started)
	}
	return h.finished.Sub(h.started)
}

func (h HeaderModel) View() string {
	name := "numcalc"
	if h.version != "" && h.version != "dev" {
		name += " " + h.version
	}
	sep := versionStyle.Render(" | ")
	parts := []string{titleStyle.Render(name)}
	if h.target != "" {
		parts = append(parts, versionStyle.Render(h.target))
	}
	parts = append(parts, elapsedStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.Elapsed())))
	row := strings.Join(parts, sep)

	if pad := h.width - 2 - lipgloss.Width(row); pad > 0 {
		row += strings.Repeat(" ", pad)
	}
	return headerStyle.Width(h.width).Render(row)
}
