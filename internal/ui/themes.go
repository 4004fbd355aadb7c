// Package ui holds the terminal palette used by the calculator's CLI, REPL
// and usage screens. Colors are grouped by role (prompt, value, operator...)
// rather than by hue so that switching themes never changes meaning.
package ui

import (
	"os"
	"sync"
)

// Theme maps each display role to an ANSI escape sequence.
type Theme struct {
	// Name identifies the theme ("dark", "light" or "none").
	Name string
	// Prompt colors the REPL prompt and section headers.
	Prompt string
	// Value colors computed results.
	Value string
	// Operator colors operator symbols and flag names.
	Operator string
	// Muted colors secondary text such as durations and defaults.
	Muted string
	// Warning colors cancellations and truncation notices.
	Warning string
	// Error colors failures.
	Error string
	// Bold emphasises titles.
	Bold string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:     "dark",
		Prompt:   "\033[38;5;39m",
		Value:    "\033[38;5;82m",
		Operator: "\033[38;5;141m",
		Muted:    "\033[38;5;245m",
		Warning:  "\033[38;5;220m",
		Error:    "\033[38;5;196m",
		Bold:     "\033[1m",
		Reset:    "\033[0m",
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:     "light",
		Prompt:   "\033[38;5;27m",
		Value:    "\033[38;5;28m",
		Operator: "\033[38;5;54m",
		Muted:    "\033[38;5;240m",
		Warning:  "\033[38;5;130m",
		Error:    "\033[38;5;124m",
		Bold:     "\033[1m",
		Reset:    "\033[0m",
	}

	// NoColorTheme disables all color output.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name. Unknown names select the dark theme.
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

// InitTheme picks the startup theme. Colors are disabled when noColor is set
// or when the NO_COLOR environment variable exists (https://no-color.org/).
func InitTheme(noColor bool) {
	if _, exists := os.LookupEnv("NO_COLOR"); noColor || exists {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
