package ui

import "github.com/charmbracelet/lipgloss"

// ANSI colors only, so the palette follows the terminal theme.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("8"))

	UserStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	AssistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	WarnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	ContextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)
