package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#E8A87C")
	accentColor  = lipgloss.Color("#85DCB0")
	errorColor   = lipgloss.Color("#E85D75")
	mutedColor   = lipgloss.Color("#6B7280")
	textColor    = lipgloss.Color("#F3F4F6")
	dimTextColor = lipgloss.Color("#9CA3AF")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(dimTextColor).
			Italic(true)

	fileNameStyle = lipgloss.NewStyle().
			Foreground(textColor).
			PaddingLeft(2)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 2)

	focusedButtonStyle = buttonStyle.
				BorderForeground(accentColor).
				Foreground(accentColor).
				Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			MarginTop(1)

	iconError  = "✗"
	iconFolder = "📁"
)
