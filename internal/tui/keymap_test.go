package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_Matches(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, km.Quit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
		{"space pauses", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, km.Pause},
		{"p pauses", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}, km.Pause},
		{"r restarts", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, km.Reset},
		{"k scrolls up", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, km.Up},
		{"down arrow scrolls", tea.KeyMsg{Type: tea.KeyDown}, km.Down},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, km.PageDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, key.Matches(tt.msg, tt.binding), "key %q", tt.msg.String())
		})
	}
}

func TestKeyMap_Help(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()

	short := km.ShortHelp()
	assert.Len(t, short, 5)
	assert.Equal(t, "quit", short[0].Help().Desc)

	full := km.FullHelp()
	assert.Len(t, full, 2)
	for _, column := range full {
		for _, b := range column {
			assert.True(t, b.Enabled())
			assert.NotEmpty(t, b.Help().Key)
		}
	}
}
