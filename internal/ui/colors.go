package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Base styles - initialized based on terminal support
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	infoStyle    lipgloss.Style
	dimStyle     lipgloss.Style
	pathStyle    lipgloss.Style
)

func init() {
	initStyles()
}

func initStyles() {
	if !IsTerminal() {
		// Plain styles for non-terminal
		successStyle = lipgloss.NewStyle()
		errorStyle = lipgloss.NewStyle()
		warningStyle = lipgloss.NewStyle()
		infoStyle = lipgloss.NewStyle()
		dimStyle = lipgloss.NewStyle()
		pathStyle = lipgloss.NewStyle()
		return
	}

	// Colored styles for terminal
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
}

// Success renders success text.
func Success(text string) string {
	return successStyle.Render(text)
}

// Error renders error text.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning renders warning text.
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Info renders info text.
func Info(text string) string {
	return infoStyle.Render(text)
}

// Dim renders dim text.
func Dim(text string) string {
	return dimStyle.Render(text)
}

// Path renders a file path.
func Path(text string) string {
	return pathStyle.Render(text)
}
