package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Theme tests mutate package state and therefore do not run in parallel.

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	for _, name := range ThemeNames() {
		assert.True(t, SetTheme(name), name)
		assert.Equal(t, name, GetCurrentTheme().Name)
	}
	assert.False(t, SetTheme("solarized"))
	assert.Equal(t, DarkTheme.Name, GetCurrentTheme().Name)
}

func TestInitThemeHonoursNoColor(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(true)
	assert.Equal(t, NoColorTheme.Name, GetCurrentTheme().Name)
	assert.Equal(t, NoColorTUITheme, GetCurrentTUITheme())

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	assert.Equal(t, NoColorTheme.Name, GetCurrentTheme().Name)
}

func TestInitThemeDefault(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(false)
	if _, set := lookupNoColor(); set {
		t.Skip("NO_COLOR set in the environment")
	}
	assert.Equal(t, DarkTheme.Name, GetCurrentTheme().Name)
	assert.Equal(t, DarkTUITheme, GetCurrentTUITheme())
}

func TestColorAccessors(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(LightTheme)
	assert.Equal(t, LightTheme.Error, ColorRed())
	assert.Equal(t, LightTheme.Success, ColorGreen())
	assert.Equal(t, LightTheme.Warning, ColorYellow())
	assert.Equal(t, LightTheme.Primary, ColorBlue())
	assert.Equal(t, LightTheme.Info, ColorMagenta())
	assert.Equal(t, LightTheme.Exact, ColorCyan())
	assert.Equal(t, LightTheme.Secondary, ColorGrey())
	assert.Equal(t, escBold, ColorBold())
	assert.Equal(t, escUnderline, ColorUnderline())
	assert.Equal(t, escReset, ColorReset())
	assert.Equal(t, LightTheme.Error+"x"+escReset, Paint(ColorRed(), "x"))

	SetCurrentTheme(NoColorTheme)
	assert.Equal(t, "x", Paint(ColorRed(), "x"))
	assert.Empty(t, ColorBold())
}

func TestHeaderBox(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	SetCurrentTheme(NoColorTheme)

	box := HeaderBox("numcalc")
	assert.Contains(t, box, "numcalc")
	assert.Equal(t, 3, len(strings.Split(box, "\n")))
}

func lookupNoColor() (string, bool) { return os.LookupEnv("NO_COLOR") }
