package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the run status and key help.
type FooterModel struct {
	help   help.Model
	keymap KeyMap
	width  int
	paused bool
	done   bool
	err    bool
}

// NewFooterModel creates a footer describing keymap.
func NewFooterModel(keymap KeyMap) FooterModel {
	h := help.New()
	h.Styles.ShortKey = footerKeyStyle
	h.Styles.ShortDesc = footerDescStyle
	h.Styles.ShortSeparator = footerDescStyle
	return FooterModel{help: h, keymap: keymap}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	f.help.Width = max(w-14, 0)
}

// SetPaused sets the paused flag.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone sets the done flag.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError sets the error flag.
func (f *FooterModel) SetError(e bool) { f.err = e }

func (f FooterModel) status() string {
	switch {
	case f.err:
		return statusErrorStyle.Render("ERROR")
	case f.done:
		return statusDoneStyle.Render("DONE")
	case f.paused:
		return statusPausedStyle.Render("PAUSED")
	default:
		return statusRunningStyle.Render("RUNNING")
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	row := " " + f.status() + "  " + f.help.View(f.keymap)
	return lipgloss.NewStyle().Width(f.width).Render(row)
}
