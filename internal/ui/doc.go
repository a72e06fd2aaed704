// Package ui provides the color themes shared by the text presenter and the
// interactive shell. Styling goes through lipgloss so that the terminal's
// color profile is honored.
package ui
