package shell

import "github.com/charmbracelet/lipgloss"

var (
	// Base colors
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("42")
	warningColor = lipgloss.Color("214")
	errorColor   = lipgloss.Color("196")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor).
			Padding(0, 1)

	// Text styles
	titleStyle        = lipgloss.NewStyle().Bold(true)
	subtleStyle       = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle        = lipgloss.NewStyle().Foreground(errorColor)
	successStyle      = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	labelStyle        = lipgloss.NewStyle().Foreground(mutedColor)
	focusedLabelStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)

	// Tab bar
	tabStyle       = lipgloss.NewStyle().Foreground(mutedColor).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)
)
