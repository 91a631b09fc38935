package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("86")  // Cyan
	colorMuted   = lipgloss.Color("245") // Light gray
	colorWarning = lipgloss.Color("214") // Orange

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMuted)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarning)
)
