package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for terminal output.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Accent highlights identifiers such as use case names.
	Accent lipgloss.TerminalColor
	// Key colors field names in presented responses.
	Key lipgloss.TerminalColor
	// Value colors field values.
	Value lipgloss.TerminalColor
	// Success indicates a completed dispatch.
	Success lipgloss.TerminalColor
	// Error indicates a failure.
	Error lipgloss.TerminalColor
	// Dim is used for secondary information.
	Dim lipgloss.TerminalColor
	// Bold enables bold headings.
	Bold bool
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:    "dark",
		Accent:  lipgloss.Color("#FF8C00"),
		Key:     lipgloss.Color("39"),
		Value:   lipgloss.Color("#E0E0E0"),
		Success: lipgloss.Color("82"),
		Error:   lipgloss.Color("196"),
		Dim:     lipgloss.Color("245"),
		Bold:    true,
	}

	// LightTheme uses darker colors for light backgrounds.
	LightTheme = Theme{
		Name:    "light",
		Accent:  lipgloss.Color("130"),
		Key:     lipgloss.Color("27"),
		Value:   lipgloss.Color("236"),
		Success: lipgloss.Color("28"),
		Error:   lipgloss.Color("124"),
		Dim:     lipgloss.Color("240"),
		Bold:    true,
	}

	// NoColorTheme disables all styling.
	// Used when NO_COLOR is set or --no-color is provided.
	NoColorTheme = Theme{
		Name:    "none",
		Accent:  lipgloss.NoColor{},
		Key:     lipgloss.NoColor{},
		Value:   lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme.
// This is primarily used by tests to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name. Unknown names select the dark
// theme.
func SetTheme(name string) {
	switch name {
	case "light":
		SetCurrentTheme(LightTheme)
	case "none":
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}

// InitTheme selects the theme named name unless colors are disabled by
// noColor or by the NO_COLOR environment variable (https://no-color.org/).
func InitTheme(name string, noColor bool) {
	if noColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(name)
}

func render(color func(Theme) lipgloss.TerminalColor, bold bool, s string) string {
	t := GetCurrentTheme()
	if t.Name == NoColorTheme.Name {
		return s
	}
	return lipgloss.NewStyle().Foreground(color(t)).Bold(bold && t.Bold).Render(s)
}

// Accent renders s in the accent color.
func Accent(s string) string {
	return render(func(t Theme) lipgloss.TerminalColor { return t.Accent }, false, s)
}

// Key renders a field name.
func Key(s string) string {
	return render(func(t Theme) lipgloss.TerminalColor { return t.Key }, false, s)
}

// Value renders a field value.
func Value(s string) string {
	return render(func(t Theme) lipgloss.TerminalColor { return t.Value }, false, s)
}

// Success renders s in the success color.
func Success(s string) string {
	return render(func(t Theme) lipgloss.TerminalColor { return t.Success }, false, s)
}

// Error renders s in the error color.
func Error(s string) string {
	return render(func(t Theme) lipgloss.TerminalColor { return t.Error }, false, s)
}

// Dim renders secondary text.
func Dim(s string) string {
	return render(func(t Theme) lipgloss.TerminalColor { return t.Dim }, false, s)
}

// Heading renders a bold accent heading.
func Heading(s string) string {
	return render(func(t Theme) lipgloss.TerminalColor { return t.Accent }, true, s)
}
