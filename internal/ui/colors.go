package ui

import "github.com/charmbracelet/lipgloss"

// ColorReset returns the reset escape of the active theme.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info color.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the exact-value color.
func ColorCyan() string { return GetCurrentTheme().Exact }

// ColorGrey returns the secondary color.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// Paint wraps s in color and a reset. With colors disabled it returns s.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}

// HeaderBox renders title in a rounded border using the dashboard palette.
// It is used for the REPL banner and for result summaries.
func HeaderBox(title string) string {
	t := GetCurrentTUITheme()
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Render(title)
}
