// Package ui holds the color themes shared by the CLI, the REPL and the TUI.
// ANSI escape accessors (ColorRed, ColorBold, ...) serve the line-oriented
// output; lipgloss palettes and styles serve the dashboard and boxed results.
package ui
