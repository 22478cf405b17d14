package ui

import (
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is an ANSI palette for line-oriented output. Each role maps to an
// escape sequence; NoColorTheme maps every role to "".
type Theme struct {
	Name string
	// Primary highlights function names and headings.
	Primary string
	// Secondary is used for labels and secondary text.
	Secondary string
	Success   string
	Warning   string
	Error     string
	// Info is used for iteration counts and stable digit counts.
	Info string
	// Exact highlights exact fractions as opposed to approximations.
	Exact     string
	Bold      string
	Underline string
	Reset     string
}

const (
	escBold      = "\033[1m"
	escUnderline = "\033[4m"
	escReset     = "\033[0m"
)

func ansi256(code string) string { return "\033[38;5;" + code + "m" }

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   ansi256("39"),
		Secondary: ansi256("245"),
		Success:   ansi256("82"),
		Warning:   ansi256("220"),
		Error:     ansi256("196"),
		Info:      ansi256("141"),
		Exact:     ansi256("51"),
		Bold:      escBold,
		Underline: escUnderline,
		Reset:     escReset,
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   ansi256("27"),
		Secondary: ansi256("240"),
		Success:   ansi256("28"),
		Warning:   ansi256("130"),
		Error:     ansi256("124"),
		Info:      ansi256("54"),
		Exact:     ansi256("30"),
		Bold:      escBold,
		Underline: escUnderline,
		Reset:     escReset,
	}

	// AmberTheme matches the dashboard palette.
	AmberTheme = Theme{
		Name:      "amber",
		Primary:   ansi256("208"),
		Secondary: ansi256("245"),
		Success:   ansi256("82"),
		Warning:   ansi256("214"),
		Error:     ansi256("196"),
		Info:      ansi256("69"),
		Exact:     ansi256("229"),
		Bold:      escBold,
		Underline: escUnderline,
		Reset:     escReset,
	}

	// NoColorTheme disables escapes entirely.
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		AmberTheme.Name:   AmberTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// ThemeNames lists the selectable theme names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme installs t as the active theme. Tests use it to restore
// state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme selects a theme by name and reports whether the name was known.
// Unknown names select DarkTheme.
func SetTheme(name string) bool {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	t, ok := themes[name]
	if !ok {
		t = DarkTheme
	}
	currentTheme = t
	return ok
}

// InitTheme picks the startup theme: NoColorTheme when noColor is set or the
// NO_COLOR environment variable exists (https://no-color.org/), DarkTheme
// otherwise.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

// TUITheme is the lipgloss palette of the dashboard.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the amber dashboard palette.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#000000"),
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#FF6600"),
		Accent:  lipgloss.Color("#FF8C00"),
		Success: lipgloss.Color("#9ECE6A"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#4488FF"),
	}

	// NoColorTUITheme renders with the terminal defaults.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns NoColorTUITheme when colors are disabled and
// DarkTUITheme otherwise.
func GetCurrentTUITheme() TUITheme {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}
